package handlers

import (
	"bufio"
	"net"
	"testing"
	"time"
)

// startCollector accepts connections and forwards received lines.
func startCollector(t *testing.T) (net.Listener, <-chan string) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	lines := make(chan string, 64)
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					lines <- scanner.Text()
				}
			}(conn)
		}
	}()
	return listener, lines
}

func TestNetwork_StreamsEntries(t *testing.T) {
	listener, lines := startCollector(t)

	h, err := NewNetwork(listener.Addr().String())
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	defer h.Close()

	for _, entry := range []string{"one\n", "two\n"} {
		if _, err := h.Write([]byte(entry)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	for _, want := range []string{"one", "two"} {
		select {
		case got := <-lines:
			if got != want {
				t.Errorf("received %q, want %q", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestNetwork_ReconnectsAfterPeerClose(t *testing.T) {
	listener, lines := startCollector(t)

	h, err := NewNetwork(listener.Addr().String())
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	defer h.Close()

	if _, err := h.Write([]byte("before\n")); err != nil {
		t.Fatalf("first Write: %v", err)
	}

	// Drop the handler's connection server-side; the retry budget should
	// cover a reconnect on the next write.
	h.mu.Lock()
	h.conn.Close()
	h.conn = nil
	h.mu.Unlock()

	if _, err := h.Write([]byte("after\n")); err != nil {
		t.Fatalf("Write after reconnect: %v", err)
	}

	received := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case got := <-lines:
			received[got] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for entries")
		}
	}
	if !received["before"] || !received["after"] {
		t.Errorf("received %v", received)
	}
}

func TestNetwork_UnreachableAddress(t *testing.T) {
	// Bind then close to get a port nothing listens on.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	if _, err := newNetwork(addr, 200*time.Millisecond, 200*time.Millisecond, 0); err == nil {
		t.Error("expected dial error for unreachable address")
	}
}

func TestNetwork_RequiresAddress(t *testing.T) {
	if _, err := newNetworkFromConfig(map[string]interface{}{}); err == nil {
		t.Error("expected error for missing address option")
	}
}

func TestNetwork_Name(t *testing.T) {
	listener, _ := startCollector(t)
	h, err := NewNetwork(listener.Addr().String())
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	defer h.Close()

	if got := h.Name(); got != "network:"+listener.Addr().String() {
		t.Errorf("Name = %q", got)
	}
}
