package examples

import (
	"fmt"
	"strings"

	"github.com/lunixbochs/corntool/go/cmd"
)

var examples = []string{
	"# run a static binary from a rootfs",
	"%[1]s run --rootfs examples/rootfs/x8664_linux -f examples/rootfs/x8664_linux/bin/hello",
	"",
	"# pass guest arguments after --args",
	"%[1]s run --rootfs rootfs -f /bin/echo --args -n hello",
	"",
	"# or give the program and its arguments positionally",
	"%[1]s run --rootfs rootfs /bin/echo hello",
	"",
	"# exit(42) as x86_64 shellcode",
	"%[1]s code --arch x86_64 --os linux --format hex -i 'b83c000000bf2a0000000f05'",
	"",
	"# assemble and run ARM thumb code",
	"%[1]s code --arch arm --os linux --thumb --format asm -f payload.s",
	"",
	"# debug shellcode in qdb with record/replay",
	"%[1]s code --arch arm --os linux -f payload.bin --qdb --rr",
	"",
	"# wait for gdb on 127.0.0.1:9999, or give an address with -g=HOST:PORT",
	"%[1]s run --rootfs rootfs -g /bin/true",
	"",
	"# collect drcov coverage and print a JSON report",
	"%[1]s run --rootfs rootfs -c cov.drcov --json /bin/true",
}

// Text renders the examples for a program name.
func Text(prog string) string {
	return fmt.Sprintf(strings.Join(examples, "\n")+"\n", prog)
}

func Main(args []string) int {
	prog := strings.SplitN(args[0], " ", 2)[0]
	fmt.Fprint(cmd.Stdout, Text(prog))
	return 0
}

func init() { cmd.Register("examples", "print usage examples", Main) }
