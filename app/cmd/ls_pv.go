package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/docker/go-units"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/power-devops/vios-altdisk/pkg/inventory"
	"github.com/power-devops/vios-altdisk/pkg/util"
)

func LsPvCmd() cli.Command {
	return cli.Command{
		Name:      "ls-pv",
		ShortName: "ls",
		Usage:     "List the physical volumes of the VIOS",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "free",
				Usage: "List only disks that belong to no volume group, with their size",
			},
		},
		Action: func(c *cli.Context) {
			if err := lsPv(c); err != nil {
				logrus.WithError(err).Fatalf("Error running ls-pv command")
			}
		},
	}
}

func lsPv(c *cli.Context) error {
	ex := util.NewCmdExecutor()
	tw := tabwriter.NewWriter(os.Stdout, 0, 20, 1, ' ', 0)

	if c.Bool("free") {
		free, err := inventory.ListFreePhysicalVolumes(ex)
		if err != nil {
			return err
		}
		format := "%s\t%s\t%s\n"
		fmt.Fprintf(tw, format, "NAME", "PVID", "SIZE")
		for _, pv := range free {
			fmt.Fprintf(tw, format, pv.Name, pv.PVID, units.BytesSize(float64(pv.SizeMB*units.MiB)))
		}
		tw.Flush()
		return nil
	}

	pvs, err := inventory.ListPhysicalVolumes(ex)
	if err != nil {
		return err
	}
	format := "%s\t%s\t%s\t%s\n"
	fmt.Fprintf(tw, format, "NAME", "PVID", "VG", "STATUS")
	for _, pv := range pvs {
		fmt.Fprintf(tw, format, pv.Name, pv.PVID, pv.VolumeGroup, pv.Status)
	}
	tw.Flush()

	return nil
}
