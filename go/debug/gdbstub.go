package debug

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/logging"
	"github.com/lunixbochs/corntool/go/models"
)

var (
	// ErrKilled is returned by Drive when the client sends 'k'.
	ErrKilled   = errors.New("killed by gdb")
	errDetached = errors.New("detached")
)

func escape(p []byte) []byte {
	out := make([]byte, 0, len(p))
	for _, c := range p {
		if c == '#' || c == '$' || c == '}' || c == '*' {
			out = append(out, '}', c^0x20)
		} else {
			out = append(out, c)
		}
	}
	return out
}

func unescape(p []byte) []byte {
	out := make([]byte, 0, len(p))
	for i := 0; i < len(p); i++ {
		if p[i] == '}' && i < len(p)-1 {
			i++
			out = append(out, p[i]^0x20)
		} else {
			out = append(out, p[i])
		}
	}
	return out
}

func checksum(p []byte) []byte {
	chk := 0
	for _, c := range p {
		chk = (chk + int(c)) % 256
	}
	return []byte(fmt.Sprintf("%02x", chk))
}

func parseRange(s string) (uint64, uint64) {
	tmp := strings.Split(s, ":")
	tmp = strings.Split(tmp[len(tmp)-1], ",")
	if len(tmp) != 2 {
		return 0, 0
	}
	a, _ := strconv.ParseUint(tmp[0], 16, 64)
	b, _ := strconv.ParseUint(tmp[1], 16, 64)
	return a, b
}

// Gdbstub is a models.Controller speaking the gdb remote protocol.
type Gdbstub struct {
	ln  net.Listener
	log *logging.Logger
}

func NewGdbstub(ln net.Listener, log *logging.Logger) *Gdbstub {
	if log == nil {
		log = logging.Discard()
	}
	return &Gdbstub{ln: ln, log: log}
}

func (g *Gdbstub) Addr() net.Addr { return g.ln.Addr() }

// Drive waits for one client and serves it until it detaches, kills the
// target or the guest exits.
func (g *Gdbstub) Drive(t models.Target) error {
	defer g.ln.Close()
	conn, err := g.ln.Accept()
	if err != nil {
		return errors.Wrap(err, "gdb accept failed")
	}
	g.log.Infof("gdb stub connected from %s", conn.RemoteAddr())
	return g.Serve(conn, t)
}

// Serve runs the protocol on an established connection.
func (g *Gdbstub) Serve(conn io.ReadWriteCloser, t models.Target) error {
	defer conn.Close()
	var order binary.ByteOrder = binary.LittleEndian
	if bo, ok := t.(interface{ ByteOrder() binary.ByteOrder }); ok {
		order = bo.ByteOrder()
	}
	c := &gdbClient{rw: conn, t: t, order: order, log: g.log}
	err := c.run()
	if err == errDetached || err == io.EOF {
		return nil
	}
	if err != nil && err != ErrKilled {
		g.log.Errorf("gdb stub error: %v", err)
	}
	return err
}

type gdbClient struct {
	rw        io.ReadWriter
	t         models.Target
	order     binary.ByteOrder
	log       *logging.Logger
	noAck     bool
	noAckTest bool
	done      bool
}

func (c *gdbClient) Send(s string) error {
	data := escape([]byte(s))
	data = []byte("$" + string(data) + "#" + string(checksum(data)))
	_, err := c.rw.Write(data)
	return errors.Wrap(err, "gdbstub socket write failed")
}

func (c *gdbClient) ack(b byte) {
	if !c.noAck {
		c.rw.Write([]byte{b})
	}
}

func (c *gdbClient) fmtreg(val uint64, size int) string {
	var tmp [8]byte
	switch size {
	case 8:
		c.order.PutUint64(tmp[:], val)
	case 4:
		c.order.PutUint32(tmp[:], uint32(val))
	case 2:
		c.order.PutUint16(tmp[:], uint16(val))
	default:
		tmp[0] = byte(val)
		size = 1
	}
	return hex.EncodeToString(tmp[:size])
}

func (c *gdbClient) parsereg(p []byte) uint64 {
	var tmp [8]byte
	switch len(p) {
	case 8:
		return c.order.Uint64(p)
	case 4:
		return uint64(c.order.Uint32(p))
	case 2:
		return uint64(c.order.Uint16(p))
	case 1:
		return uint64(p[0])
	}
	copy(tmp[:], p)
	return c.order.Uint64(tmp[:])
}

func (c *gdbClient) readReg(r models.GdbReg) string {
	if r.Enum < 0 {
		return strings.Repeat("00", r.Bytes)
	}
	val, _ := c.t.RegRead(r.Enum)
	return c.fmtreg(val, r.Bytes)
}

// stopReply reports why the target stopped, or that it exited.
func (c *gdbClient) stopReply() error {
	if c.t.Exited() {
		c.done = true
		return c.Send(fmt.Sprintf("W%02x", c.t.ExitCode()&0xff))
	}
	return c.Send("S05")
}

func (c *gdbClient) Handle(cmdb []byte) error {
	if len(cmdb) == 0 {
		return nil
	}
	t := c.t
	b, rest := cmdb[0], string(cmdb[1:])
	var cmd, args string
	if strings.Contains(rest, ":") {
		tmp := strings.SplitN(rest, ":", 2)
		cmd, args = tmp[0], tmp[1]
	} else {
		cmd = rest
	}
	switch b {
	case 'q': // query
		switch cmd {
		case "Supported":
			return c.Send("PacketSize=4000")
		case "Attached":
			return c.Send("1")
		case "C":
			return c.Send("QC1")
		case "Symbol":
			return c.Send("OK")
		default:
			c.log.Debugf("gdb: unknown query q%s %s", cmd, args)
			return c.Send("")
		}
	case 'Q': // set query
		if cmd == "StartNoAckMode" {
			c.noAckTest = true
			return c.Send("OK")
		}
		return c.Send("")
	case 'H', 'T': // thread ops, single thread
		return c.Send("OK")
	case 'g': // read regs
		var out strings.Builder
		for _, r := range t.Arch().GdbRegs {
			out.WriteString(c.readReg(r))
		}
		return c.Send(out.String())
	case 'p': // read one reg
		i, err := strconv.ParseUint(cmd, 16, 32)
		regs := t.Arch().GdbRegs
		if err != nil || int(i) >= len(regs) {
			return c.Send("E00")
		}
		return c.Send(c.readReg(regs[i]))
	case 'P': // write one reg
		tmp := strings.SplitN(rest, "=", 2)
		regs := t.Arch().GdbRegs
		i, err := strconv.ParseUint(tmp[0], 16, 32)
		if err != nil || len(tmp) != 2 || int(i) >= len(regs) {
			return c.Send("E00")
		}
		data, err := hex.DecodeString(tmp[1])
		if err != nil {
			return c.Send("E00")
		}
		if r := regs[i]; r.Enum >= 0 {
			if err := t.RegWrite(r.Enum, c.parsereg(data)); err != nil {
				return c.Send("E01")
			}
		}
		return c.Send("OK")
	case 'm': // read memory
		addr, size := parseRange(rest)
		mem, err := t.MemRead(addr, size)
		if err != nil {
			c.log.Debugf("gdb: error reading mem: %v", err)
			return c.Send("E01")
		}
		return c.Send(hex.EncodeToString(mem))
	case 'M': // write memory
		addr, _ := parseRange(cmd)
		data, err := hex.DecodeString(args)
		if err != nil {
			return c.Send("E00")
		}
		if err := t.MemWrite(addr, data); err != nil {
			c.log.Debugf("gdb: error writing mem: %v", err)
			return c.Send("E01")
		}
		return c.Send("OK")
	case 'Z', 'z': // breakpoints
		tmp := strings.Split(rest, ",")
		if len(tmp) != 3 || tmp[0] != "0" {
			return c.Send("")
		}
		addr, err := strconv.ParseUint(tmp[1], 16, 64)
		if err != nil {
			return c.Send("E00")
		}
		if b == 'Z' {
			t.AddBreakpoint(addr)
		} else {
			t.RemoveBreakpoint(addr)
		}
		return c.Send("OK")
	case 'c': // continue
		if err := t.Continue(); err != nil {
			c.log.Errorf("gdb: continue: %v", err)
		}
		return c.stopReply()
	case 's': // step
		if err := t.Step(); err != nil {
			c.log.Errorf("gdb: step: %v", err)
		}
		return c.stopReply()
	case '?': // last signal
		return c.stopReply()
	case 'k':
		return ErrKilled
	case 'D':
		c.Send("OK")
		return errDetached
	case 'v':
		// no vCont
		return c.Send("")
	default:
		c.log.Debugf("gdb: unknown command %c %s", b, rest)
		return c.Send("")
	}
}

func (c *gdbClient) run() error {
	input := bufio.NewReader(c.rw)
	for !c.done {
		b, err := input.ReadByte()
		if err != nil {
			return err
		}
		switch b {
		case '+', '-':
			if c.noAckTest && b == '+' {
				c.noAck = true
			}
			c.noAckTest = false
			continue
		case 0x03:
			// execution is synchronous, so there is nothing to interrupt
			continue
		case '$':
		default:
			continue
		}
		pkt, err := input.ReadBytes('#')
		if err != nil {
			return err
		}
		var chk [2]byte
		if _, err := io.ReadFull(input, chk[:]); err != nil {
			return err
		}
		data := pkt[:len(pkt)-1]
		if !bytes.Equal(checksum(data), chk[:]) {
			c.ack('-')
			continue
		}
		c.ack('+')
		if err := c.Handle(unescape(data)); err != nil {
			return err
		}
	}
	return nil
}
