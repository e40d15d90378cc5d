package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/power-devops/vios-altdisk/pkg/altdisk"
	"github.com/power-devops/vios-altdisk/pkg/types"
	"github.com/power-devops/vios-altdisk/pkg/util"
)

func CopyCmd() cli.Command {
	return cli.Command{
		Name:  "copy",
		Usage: "Clone the running rootvg to alternate disk(s)",
		Flags: []cli.Flag{
			cli.StringSliceFlag{
				Name:  "target",
				Usage: "Target disk, e.g. hdisk4. Repeat for multiple disks, leave empty for automatic selection",
			},
			cli.StringFlag{
				Name:  "size-policy",
				Value: string(types.PolicyNearest),
				Usage: "Automatic selection policy: minimize, upper, lower or nearest",
			},
			cli.BoolFlag{
				Name:  "force",
				Usage: "Remove an existing alternate rootvg and suspend active rootvg mirroring for the duration of the copy",
			},
		},
		Action: func(c *cli.Context) {
			if err := copyAltDisk(c); err != nil {
				logrus.WithError(err).Fatalf("Error running copy command")
			}
		},
	}
}

func copyAltDisk(c *cli.Context) error {
	policy, err := types.ParseSizePolicy(c.String("size-policy"))
	if err != nil {
		return err
	}

	res, err := altdisk.New(util.NewCmdExecutor()).Copy(altdisk.CopyRequest{
		Targets: c.StringSlice("target"),
		Policy:  policy,
		Force:   c.Bool("force"),
	})
	return printResult(res, err)
}

// printResult prints the result JSON even when the operation failed, so the
// caller still sees the accumulated command output and the changed flag.
func printResult(res *types.Result, err error) error {
	if err != nil {
		var cmdErr *types.CommandError
		if errors.As(err, &cmdErr) {
			res.AppendOutput(cmdErr.Stdout, cmdErr.Stderr)
		}
		res.Msg = err.Error()
	}
	output, merr := json.MarshalIndent(res, "", "\t")
	if merr != nil {
		return merr
	}
	fmt.Println(string(output))
	return err
}
