package transport

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"
)

// serveScripted accepts one connection and writes each payload in order,
// leaving the connection open until the listener closes.
func serveScripted(t *testing.T, payloads ...[]byte) (host string, port int, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	quit := make(chan struct{})
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		for _, p := range payloads {
			if _, err := conn.Write(p); err != nil {
				return
			}
		}
		<-quit
	}()
	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port, func() {
		close(quit)
		_ = ln.Close()
	}
}

func TestDialEthernetConnectRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	_, err = DialEthernet("127.0.0.1", port, 500*time.Millisecond)
	if !errors.Is(err, ErrConnect) {
		t.Fatalf("expected ErrConnect, got %v", err)
	}
}

func TestEthernetReadTerminatedFrame(t *testing.T) {
	host, port, stop := serveScripted(t, []byte("\x06\r\n"))
	defer stop()

	tr, err := DialEthernet(host, port, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer tr.Close()

	data, err := tr.Read(time.Second)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Contains(data, []byte{0x06}) || !bytes.Contains(data, []byte{'\r'}) {
		t.Fatalf("unexpected frame: %q", data)
	}
}

func TestEthernetReadSpansMultipleWrites(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = conn.Write([]byte("0,1.2"))
		time.Sleep(30 * time.Millisecond)
		_, _ = conn.Write([]byte("3E-3\r\n"))
		time.Sleep(200 * time.Millisecond)
	}()

	addr := ln.Addr().(*net.TCPAddr)
	tr, err := DialEthernet("127.0.0.1", addr.Port, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer tr.Close()

	data, err := tr.Read(time.Second)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Contains(data, []byte("0,1.23E-3\r")) {
		t.Fatalf("unexpected frame: %q", data)
	}
}

func TestEthernetReadTimeoutWithoutData(t *testing.T) {
	host, port, stop := serveScripted(t)
	defer stop()

	tr, err := DialEthernet(host, port, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer tr.Close()

	start := time.Now()
	_, err = tr.Read(60 * time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("read blocked past its deadline")
	}

	// The connection stays usable after a timeout.
	if err := tr.Write([]byte("PR1\r")); err != nil {
		t.Fatalf("write after timeout: %v", err)
	}
}

func TestEthernetReadReturnsUnterminatedTail(t *testing.T) {
	host, port, stop := serveScripted(t, []byte("0,1.23E-3"))
	defer stop()

	tr, err := DialEthernet(host, port, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer tr.Close()

	data, err := tr.Read(80 * time.Millisecond)
	if err != nil {
		t.Fatalf("expected partial data, got error %v", err)
	}
	if string(data) != "0,1.23E-3" {
		t.Fatalf("unexpected partial frame: %q", data)
	}
}

func TestEthernetCloseIsIdempotent(t *testing.T) {
	host, port, stop := serveScripted(t)
	defer stop()

	tr, err := DialEthernet(host, port, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
