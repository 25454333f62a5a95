package status

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/farfania/oblivion-launcher/internal/jsonx"
	"github.com/farfania/oblivion-launcher/internal/model"
)

// Server list ping constants
const (
	slpProtocolVersion = 47
	slpNextStateStatus = 1
	slpPacketStatus    = 0x00
	maxStatusLength    = 1 << 20
	defaultPingTimeout = 5 * time.Second
)

var errVarIntTooBig = errors.New("varint is too big")

// Pinger queries a game server for its status
type Pinger interface {
	Ping(ctx context.Context, host string, port int) (model.ServerStatus, error)
}

// SLPPinger implements the Minecraft server list ping
type SLPPinger struct {
	Timeout time.Duration
}

// NewSLPPinger creates a pinger with the given per-ping timeout
func NewSLPPinger(timeout time.Duration) *SLPPinger {
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	return &SLPPinger{Timeout: timeout}
}

// Ping connects to host:port and reads the server status
func (p *SLPPinger) Ping(ctx context.Context, host string, port int) (model.ServerStatus, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return model.ServerStatus{}, fmt.Errorf("slp: dial: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if err := writeHandshake(conn, host, port); err != nil {
		return model.ServerStatus{}, fmt.Errorf("slp: handshake: %w", err)
	}

	payload, err := readStatus(bufio.NewReader(conn))
	if err != nil {
		return model.ServerStatus{}, fmt.Errorf("slp: read status: %w", err)
	}
	return parseStatus(payload)
}

func writeHandshake(w io.Writer, host string, port int) error {
	var data bytes.Buffer
	writeVarInt(&data, slpPacketStatus)
	writeVarInt(&data, slpProtocolVersion)
	writeString(&data, host)
	binary.Write(&data, binary.BigEndian, uint16(port))
	writeVarInt(&data, slpNextStateStatus)

	var frame bytes.Buffer
	writeVarInt(&frame, int32(data.Len()))
	frame.Write(data.Bytes())

	// Status request: length 1, packet id 0
	writeVarInt(&frame, 1)
	writeVarInt(&frame, slpPacketStatus)

	_, err := w.Write(frame.Bytes())
	return err
}

func readStatus(r *bufio.Reader) ([]byte, error) {
	if _, err := readVarInt(r); err != nil {
		return nil, err
	}
	id, err := readVarInt(r)
	if err != nil {
		return nil, err
	}
	if id != slpPacketStatus {
		return nil, fmt.Errorf("unexpected packet id %d", id)
	}
	length, err := readVarInt(r)
	if err != nil {
		return nil, err
	}
	if length < 0 || length > maxStatusLength {
		return nil, fmt.Errorf("invalid status length %d", length)
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

type statusResponse struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int    `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int `json:"max"`
		Online int `json:"online"`
	} `json:"players"`
	Description jsonx.RawMessage `json:"description"`
}

type chatComponent struct {
	Text  string          `json:"text"`
	Extra []chatComponent `json:"extra"`
}

func (c chatComponent) flatten(b *strings.Builder) {
	b.WriteString(c.Text)
	for _, e := range c.Extra {
		e.flatten(b)
	}
}

func parseStatus(payload []byte) (model.ServerStatus, error) {
	var resp statusResponse
	if err := jsonx.Unmarshal(payload, &resp); err != nil {
		return model.ServerStatus{}, fmt.Errorf("slp: decode status: %w", err)
	}
	return model.ServerStatus{
		Online:        true,
		OnlinePlayers: resp.Players.Online,
		MaxPlayers:    resp.Players.Max,
		Version:       resp.Version.Name,
		MOTD:          parseDescription(resp.Description),
	}, nil
}

func parseDescription(raw jsonx.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := jsonx.Unmarshal(raw, &text); err == nil {
		return text
	}
	var component chatComponent
	if err := jsonx.Unmarshal(raw, &component); err != nil {
		return ""
	}
	var b strings.Builder
	component.flatten(&b)
	return b.String()
}

func writeVarInt(b *bytes.Buffer, value int32) {
	v := uint32(value)
	for {
		if v&^0x7F == 0 {
			b.WriteByte(byte(v))
			return
		}
		b.WriteByte(byte(v&0x7F | 0x80))
		v >>= 7
	}
}

func writeString(b *bytes.Buffer, s string) {
	writeVarInt(b, int32(len(s)))
	b.WriteString(s)
}

func readVarInt(r io.ByteReader) (int32, error) {
	var result uint32
	for i := 0; i < 5; i++ {
		c, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(c&0x7F) << (7 * i)
		if c&0x80 == 0 {
			return int32(result), nil
		}
	}
	return 0, errVarIntTooBig
}
