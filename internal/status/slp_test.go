package status

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"
)

// serveStatus answers one server list ping with payload
func serveStatus(t *testing.T, payload string) (string, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)

		// Handshake
		length, err := readVarInt(r)
		if err != nil {
			return
		}
		if _, err := io.CopyN(io.Discard, r, int64(length)); err != nil {
			return
		}
		// Status request
		if _, err := readVarInt(r); err != nil {
			return
		}
		if _, err := readVarInt(r); err != nil {
			return
		}

		var body bytes.Buffer
		writeVarInt(&body, slpPacketStatus)
		writeString(&body, payload)
		var frame bytes.Buffer
		writeVarInt(&frame, int32(body.Len()))
		frame.Write(body.Bytes())
		conn.Write(frame.Bytes())
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port
}

func TestSLPPinger_Ping(t *testing.T) {
	host, port := serveStatus(t, `{"version":{"name":"1.12.2","protocol":340},"players":{"max":50,"online":7},"description":{"text":"Oblivion ","extra":[{"text":"Survival"}]}}`)

	st, err := NewSLPPinger(2*time.Second).Ping(context.Background(), host, port)
	if err != nil {
		t.Fatalf("Ping error: %v", err)
	}
	if !st.Online || st.OnlinePlayers != 7 || st.MaxPlayers != 50 {
		t.Errorf("Unexpected status %+v", st)
	}
	if st.Version != "1.12.2" {
		t.Errorf("Expected version 1.12.2, got %s", st.Version)
	}
	if st.MOTD != "Oblivion Survival" {
		t.Errorf("Expected flattened MOTD, got '%s'", st.MOTD)
	}
	if st.PlayersText("OFFLINE") != "7/50" {
		t.Errorf("Unexpected players text %s", st.PlayersText("OFFLINE"))
	}
}

func TestSLPPinger_PlainDescription(t *testing.T) {
	host, port := serveStatus(t, `{"players":{"max":10,"online":0},"description":"Hello"}`)

	st, err := NewSLPPinger(2*time.Second).Ping(context.Background(), host, port)
	if err != nil {
		t.Fatalf("Ping error: %v", err)
	}
	if st.MOTD != "Hello" {
		t.Errorf("Expected MOTD 'Hello', got '%s'", st.MOTD)
	}
}

func TestSLPPinger_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	if _, err := NewSLPPinger(time.Second).Ping(context.Background(), "127.0.0.1", port); err == nil {
		t.Error("Expected error for closed port")
	}
}

func TestVarInt(t *testing.T) {
	values := []int32{0, 1, 127, 128, 255, 25565, 2097151, -1}
	for _, v := range values {
		var b bytes.Buffer
		writeVarInt(&b, v)
		got, err := readVarInt(bufio.NewReader(&b))
		if err != nil {
			t.Fatalf("readVarInt(%d) error: %v", v, err)
		}
		if got != v {
			t.Errorf("varint round trip %d -> %d", v, got)
		}
	}

	tooLong := bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01})
	if _, err := readVarInt(tooLong); err == nil {
		t.Error("Expected error for oversized varint")
	}
}
