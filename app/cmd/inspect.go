package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/power-devops/vios-altdisk/pkg/rootvg"
	"github.com/power-devops/vios-altdisk/pkg/util"
)

func InspectCmd() cli.Command {
	return cli.Command{
		Name:  "inspect",
		Usage: "Check whether the running rootvg can be cloned and report its layout",
		Action: func(c *cli.Context) {
			if err := inspectRootVg(c); err != nil {
				logrus.WithError(err).Fatalf("Error running inspect command")
			}
		},
	}
}

func inspectRootVg(c *cli.Context) error {
	status, err := rootvg.Inspect(util.NewCmdExecutor())
	if err != nil {
		return err
	}

	output, err := json.MarshalIndent(status, "", "\t")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
