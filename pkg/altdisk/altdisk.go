package altdisk

import (
	"fmt"
	"strings"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/power-devops/vios-altdisk/pkg/inventory"
	"github.com/power-devops/vios-altdisk/pkg/lvm"
	"github.com/power-devops/vios-altdisk/pkg/rootvg"
	"github.com/power-devops/vios-altdisk/pkg/selector"
	"github.com/power-devops/vios-altdisk/pkg/types"
	"github.com/power-devops/vios-altdisk/pkg/util"
)

const successMsg = "VIOS alt disk operation completed successfully"

// Orchestrator sequences one alternate disk operation against the live
// VIOS configuration. Create one per invocation and run a single operation
// on it; nothing here is safe for concurrent use.
type Orchestrator struct {
	ex  types.Executor
	log *logrus.Entry
}

func New(ex types.Executor) *Orchestrator {
	return &Orchestrator{
		ex:  ex,
		log: logrus.WithFields(logrus.Fields{"invocation": util.UUID()}),
	}
}

// CopyRequest describes one rootvg clone operation.
type CopyRequest struct {
	// Targets are the disks to clone onto. Empty means one disk is picked
	// automatically according to Policy.
	Targets []string
	Policy  types.SizePolicy
	// Force allows removing a leftover alternate rootvg and suspending an
	// active rootvg mirror for the duration of the copy.
	Force bool
}

// CleanRequest describes one alternate rootvg removal.
type CleanRequest struct {
	// Targets are the disks to release. Empty means every disk currently
	// assigned to the alternate rootvg.
	Targets []string
}

// Copy clones the running rootvg onto alternate disks. The returned Result
// is filled even on failure, so callers always see the output of the
// commands that did run and whether the system was modified.
func (o *Orchestrator) Copy(req CopyRequest) (*types.Result, error) {
	res := &types.Result{}

	status, err := rootvg.Inspect(o.ex)
	if err != nil {
		return res, err
	}
	o.log.Debugf("The %v holds %v of %v", types.RootVolumeGroup,
		units.BytesSize(float64(status.UsedMB*units.MiB)), units.BytesSize(float64(status.TotalMB*units.MiB)))

	sel, err := selector.Select(o.ex, selector.Request{
		Disks:  req.Targets,
		Status: status,
		Policy: req.Policy,
		Force:  req.Force,
	}, res)
	if err != nil {
		return res, err
	}
	o.log.Infof("Using %v as alternate disks", sel.Disks)

	copies := len(status.Copies)
	suspended := false
	if copies > 1 {
		if !req.Force {
			return res, &types.MirroredStateError{}
		}
		o.log.Infof("Stopping the %v mirroring", types.RootVolumeGroup)
		stdout, stderr, err := lvm.Unmirror(o.ex, types.RootVolumeGroup)
		res.AppendOutput(stdout, stderr)
		if err != nil {
			return res, err
		}
		suspended = true
	}

	o.log.Infof("Copying %v to %v", types.RootVolumeGroup, strings.Join(sel.Disks, " "))
	stdout, stderr, copyErr := lvm.CopyToAltDisk(o.ex, sel.Disks)
	res.AppendOutput(stdout, stderr)
	if copyErr == nil {
		res.Changed = true
	}

	if suspended {
		restoreErr := o.restoreMirror(status, copies, res)
		if restoreErr != nil {
			if copyErr != nil {
				return res, multierr.Append(restoreErr, copyFailure(copyErr, sel.Disks))
			}
			return res, restoreErr
		}
	}

	if copyErr != nil {
		return res, copyFailure(copyErr, sel.Disks)
	}

	res.Msg = successMsg
	return res, nil
}

// restoreMirror re-establishes the mirror copies on the disks they lived on
// before the copy suspended them.
func (o *Orchestrator) restoreMirror(status *rootvg.Status, copies int, res *types.Result) error {
	disks := []string{status.Copies[2]}
	if copies > 2 {
		disks = append(disks, status.Copies[3])
	}
	o.log.Infof("Restoring the %v mirroring on %v", types.RootVolumeGroup, disks)
	stdout, stderr, err := lvm.Mirror(o.ex, types.RootVolumeGroup, copies, disks)
	res.AppendOutput(stdout, stderr)
	return err
}

func copyFailure(err error, disks []string) error {
	return errors.Wrapf(err, "failed to copy %s to %s", types.RootVolumeGroup, strings.Join(disks, " "))
}

// Clean removes the alternate rootvg definition and releases its disks.
func (o *Orchestrator) Clean(req CleanRequest) (*types.Result, error) {
	res := &types.Result{}

	pvs, err := inventory.ListPhysicalVolumes(o.ex)
	if err != nil {
		return res, err
	}

	targets := req.Targets
	if len(targets) > 0 {
		for _, disk := range targets {
			pv, ok := pvs.Find(disk)
			if !ok || pv.VolumeGroup != types.AltVolumeGroup {
				return res, &types.ValidationError{
					Disk:    disk,
					Message: fmt.Sprintf("specified disk %s is not an alternate install rootvg", disk),
				}
			}
		}
	} else {
		targets = pvs.InVolumeGroup(types.AltVolumeGroup)
		if len(targets) == 0 {
			return res, &types.NotFoundError{}
		}
	}

	o.log.Infof("Removing %v installed on %v", types.AltVolumeGroup, targets)
	stdout, stderr, err := lvm.RemoveAltVolumeGroup(o.ex)
	res.AppendOutput(stdout, stderr)
	if err != nil {
		return res, err
	}

	for _, disk := range targets {
		stdout, stderr, err := lvm.ClearOwningVolumeGroup(o.ex, disk)
		res.AppendOutput(stdout, stderr)
		if err != nil {
			return res, err
		}
	}

	res.Changed = true
	res.Msg = successMsg
	return res, nil
}
