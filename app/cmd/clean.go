package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/power-devops/vios-altdisk/pkg/altdisk"
	"github.com/power-devops/vios-altdisk/pkg/util"
)

func CleanCmd() cli.Command {
	return cli.Command{
		Name:  "clean",
		Usage: "Remove an alternate rootvg and release its disks",
		Flags: []cli.Flag{
			cli.StringSliceFlag{
				Name:  "target",
				Usage: "Disk to release, e.g. hdisk4. Repeat for multiple disks, leave empty to release every alternate rootvg disk",
			},
		},
		Action: func(c *cli.Context) {
			if err := cleanAltDisk(c); err != nil {
				logrus.WithError(err).Fatalf("Error running clean command")
			}
		},
	}
}

func cleanAltDisk(c *cli.Context) error {
	res, err := altdisk.New(util.NewCmdExecutor()).Clean(altdisk.CleanRequest{
		Targets: c.StringSlice("target"),
	})
	return printResult(res, err)
}
