package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmoranv/aolachart/pkg/transcode"
)

// transcodeCommand converts packet payloads between base64 and JSON.
// Input comes from a file argument or stdin.
func (c *CLI) transcodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcode",
		Short: "Convert packet payloads between base64 and JSON",
	}

	cmd.AddCommand(c.transcodeDecodeCommand())
	cmd.AddCommand(c.transcodeEncodeCommand())
	return cmd
}

func (c *CLI) transcodeDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a base64 packet to pretty-printed JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(args)
			if err != nil {
				return err
			}
			out, err := transcode.Decode(content)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func (c *CLI) transcodeEncodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a JSON packet to base64",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(args)
			if err != nil {
				return err
			}
			out, err := transcode.Encode(content)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
