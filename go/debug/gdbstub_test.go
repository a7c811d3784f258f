package debug

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/corntool/go/models/mock"
)

type gdbTestClient struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
}

func (c *gdbTestClient) raw(s string) {
	_, err := io.WriteString(c.conn, s)
	require.NoError(c.t, err)
}

func (c *gdbTestClient) send(pkt string) {
	c.raw(fmt.Sprintf("$%s#%s", pkt, checksum([]byte(pkt))))
}

func (c *gdbTestClient) ack() byte {
	b, err := c.r.ReadByte()
	require.NoError(c.t, err)
	return b
}

func (c *gdbTestClient) recv() string {
	b, err := c.r.ReadByte()
	require.NoError(c.t, err)
	require.Equal(c.t, byte('$'), b)
	pkt, err := c.r.ReadBytes('#')
	require.NoError(c.t, err)
	var chk [2]byte
	_, err = io.ReadFull(c.r, chk[:])
	require.NoError(c.t, err)
	data := pkt[:len(pkt)-1]
	require.Equal(c.t, string(checksum(data)), string(chk[:]))
	return string(unescape(data))
}

// roundTrip sends pkt and returns the reply.
func (c *gdbTestClient) roundTrip(pkt string) string {
	c.send(pkt)
	require.Equal(c.t, byte('+'), c.ack())
	return c.recv()
}

func startStub(t *testing.T, blocks int) (*gdbTestClient, *mock.Session, chan error) {
	s := mock.NewSession(nil)
	for i := 0; i < blocks; i++ {
		s.Blocks = append(s.Blocks, mock.Block{Addr: uint64(i), Size: 1})
	}
	server, client := net.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- NewGdbstub(nil, nil).Serve(server, s)
	}()
	return &gdbTestClient{t: t, conn: client, r: bufio.NewReader(client)}, s, done
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "9a", string(checksum([]byte("OK"))))
	assert.Equal(t, "00", string(checksum(nil)))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a}\x03b}\x04}]", string(escape([]byte("a#b$}"))))
	assert.Equal(t, "a#b$}", string(unescape(escape([]byte("a#b$}")))))

	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	properties.Property("unescape inverts escape", prop.ForAll(
		func(p []byte) bool {
			return bytes.Equal(unescape(escape(p)), p)
		},
		gen.SliceOf(gen.UInt8()),
	))
	properties.TestingRun(t)
}

func TestParseRange(t *testing.T) {
	a, b := parseRange("1000,20")
	assert.Equal(t, uint64(0x1000), a)
	assert.Equal(t, uint64(0x20), b)
	a, b = parseRange("features:read:target.xml:0,fff")
	assert.Equal(t, uint64(0), a)
	assert.Equal(t, uint64(0xfff), b)
	a, b = parseRange("junk")
	assert.Zero(t, a)
	assert.Zero(t, b)
}

func TestGdbSpec(t *testing.T) {
	assert.Equal(t, "gdb:127.0.0.1:9999", GdbSpec("default"))
	assert.Equal(t, "gdb:0.0.0.0:1234", GdbSpec("0.0.0.0:1234"))

	addr, err := ParseSpec("gdb:localhost:1")
	require.NoError(t, err)
	assert.Equal(t, "localhost:1", addr)
	_, err = ParseSpec("tcp:localhost:1")
	assert.Error(t, err)
	_, err = ParseSpec("gdb:nope")
	assert.Error(t, err)
}

func TestGdbRegisters(t *testing.T) {
	c, s, done := startStub(t, 4)
	require.NoError(t, s.RegWrite(1, 0x10))

	assert.Equal(t, "PacketSize=4000", c.roundTrip("qSupported:multiprocess+"))
	assert.Equal(t, "1", c.roundTrip("qAttached"))
	assert.Equal(t, "S05", c.roundTrip("?"))
	assert.Equal(t, "0000000000000000"+"1000000000000000"+"00000000", c.roundTrip("g"))
	assert.Equal(t, "1000000000000000", c.roundTrip("p1"))
	assert.Equal(t, "00000000", c.roundTrip("p2"))
	assert.Equal(t, "E00", c.roundTrip("p9"))

	assert.Equal(t, "OK", c.roundTrip("P1=2000000000000000"))
	sp, _ := s.RegRead(1)
	assert.Equal(t, uint64(0x20), sp)

	assert.Equal(t, "", c.roundTrip("vMustReplyEmpty"))
	assert.Equal(t, "OK", c.roundTrip("D"))
	require.NoError(t, <-done)
}

func TestGdbMemory(t *testing.T) {
	c, _, done := startStub(t, 1)
	assert.Equal(t, "OK", c.roundTrip("M100,3:23247d"))
	assert.Equal(t, "23247d", c.roundTrip("m100,3"))
	assert.Equal(t, "E00", c.roundTrip("M100,1:zz"))
	assert.Equal(t, "OK", c.roundTrip("D"))
	require.NoError(t, <-done)
}

func TestGdbExecution(t *testing.T) {
	c, s, done := startStub(t, 6)
	assert.Equal(t, "OK", c.roundTrip("Z0,3,1"))
	assert.Equal(t, "S05", c.roundTrip("c"))
	pc, _ := s.PC()
	assert.Equal(t, uint64(3), pc)

	assert.Equal(t, "S05", c.roundTrip("s"))
	pc, _ = s.PC()
	assert.Equal(t, uint64(4), pc)

	assert.Equal(t, "OK", c.roundTrip("z0,3,1"))
	assert.Equal(t, "", c.roundTrip("Z1,3,1"))

	s.Code = 3
	assert.Equal(t, "W03", c.roundTrip("c"))
	require.NoError(t, <-done)
	assert.True(t, s.Exited())
}

func TestGdbBadChecksumAndKill(t *testing.T) {
	c, _, done := startStub(t, 1)
	c.raw("$g#00")
	assert.Equal(t, byte('-'), c.ack())
	c.send("k")
	assert.Equal(t, byte('+'), c.ack())
	assert.Equal(t, ErrKilled, <-done)
}

func TestGdbNoAck(t *testing.T) {
	c, _, done := startStub(t, 1)
	assert.Equal(t, "OK", c.roundTrip("QStartNoAckMode"))
	c.raw("+")
	c.send("qAttached")
	assert.Equal(t, "1", c.recv())
	c.send("D")
	assert.Equal(t, "OK", c.recv())
	require.NoError(t, <-done)
}

func TestGdbClientHangup(t *testing.T) {
	c, _, done := startStub(t, 1)
	c.conn.Close()
	assert.NoError(t, <-done)
}

func TestListenAndDrive(t *testing.T) {
	stub, err := Listen("gdb:127.0.0.1:0", nil)
	require.NoError(t, err)
	s := mock.NewSession(nil)
	s.Blocks = []mock.Block{{Addr: 0, Size: 1}}
	done := make(chan error, 1)
	go func() { done <- stub.Drive(s) }()

	conn, err := net.Dial("tcp", stub.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	c := &gdbTestClient{t: t, conn: conn, r: bufio.NewReader(conn)}
	assert.Equal(t, "S05", c.roundTrip("?"))
	assert.Equal(t, "W00", c.roundTrip("s"))
	require.NoError(t, <-done)
}
