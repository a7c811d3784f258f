package debug

import (
	"net"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/netutil"

	"github.com/lunixbochs/corntool/go/logging"
	"github.com/lunixbochs/corntool/go/models"
)

const DefaultGdbAddr = "127.0.0.1:9999"

// GdbSpec turns the --gdb value into a bind spec. A bare flag means
// "default".
func GdbSpec(value string) string {
	if value == "default" {
		return "gdb:" + DefaultGdbAddr
	}
	return "gdb:" + value
}

// ParseSpec splits "gdb:host:port" into a listen address.
func ParseSpec(spec string) (string, error) {
	addr := strings.TrimPrefix(spec, "gdb:")
	if addr == spec {
		return "", models.Configf("bad debugger spec %q: want gdb:host:port", spec)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", models.Configf("bad gdb address %q: %v", addr, err)
	}
	return addr, nil
}

// Listen binds a gdb stub to spec. Only one client is ever served.
func Listen(spec string, log *logging.Logger) (*Gdbstub, error) {
	addr, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on %s", addr)
	}
	stub := NewGdbstub(netutil.LimitListener(ln, 1), log)
	stub.log.Infof("waiting for gdb on %s", ln.Addr())
	return stub, nil
}

// AttachGdb listens on spec and installs the stub as s's controller, so the
// next Run waits for a gdb client.
func AttachGdb(s models.Session, spec string) error {
	stub, err := Listen(spec, sessionLog(s))
	if err != nil {
		return err
	}
	s.SetController(stub)
	return nil
}

// sessionLog borrows the session's logger when it has one.
func sessionLog(s models.Target) *logging.Logger {
	if l, ok := s.(interface{ Log() *logging.Logger }); ok {
		return l.Log()
	}
	return logging.Discard()
}
