package code

import (
	"github.com/spf13/cobra"

	"github.com/lunixbochs/corntool/go/cmd"
	"github.com/lunixbochs/corntool/go/models"
)

// Parse turns code arguments into a request. A nil request means help was
// printed.
func Parse(args []string) (*models.CodeRequest, error) {
	req := &models.CodeRequest{CommonOptions: models.DefaultCommonOptions()}
	c := &cobra.Command{
		Use:   "code --arch ARCH --os OS [--format asm|hex|bin] (-f FILE | -i HEX)",
		Short: "execute raw shellcode",
		Args:  cobra.NoArgs,
		RunE:  func(c *cobra.Command, args []string) error { return nil },
	}
	fs := c.Flags()
	fs.StringVar(&req.Arch, "arch", "", "target architecture")
	fs.StringVar(&req.OS, "os", "", "target OS")
	fs.StringVar(&req.Endian, "endian", "little", "byte order: little or big")
	fs.BoolVar(&req.Thumb, "thumb", false, "start ARM code in thumb mode")
	fs.StringVar(&req.Rootfs, "rootfs", ".", "guest root filesystem")
	fs.StringVar(&req.Format, "format", "bin", "payload format: asm, hex or bin")
	fs.StringVarP(&req.Filename, "filename", "f", "", "payload file")
	fs.StringVarP(&req.Input, "input", "i", "", "inline hex payload")
	cmd.AddCommonFlags(fs, &req.CommonOptions)
	c.MarkFlagRequired("arch")
	c.MarkFlagRequired("os")

	ok, err := cmd.ParseCommand(c, args)
	if err != nil || !ok {
		return nil, err
	}
	return req, nil
}

func Main(args []string) int {
	req, err := Parse(args[1:])
	if err != nil || req == nil {
		return cmd.Fail(err)
	}
	return cmd.Fail(cmd.NewRunner().Execute(req))
}

func init() { cmd.Register("code", "execute raw shellcode", Main) }
