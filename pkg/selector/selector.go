package selector

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/sirupsen/logrus"

	"github.com/power-devops/vios-altdisk/pkg/inventory"
	"github.com/power-devops/vios-altdisk/pkg/lvm"
	"github.com/power-devops/vios-altdisk/pkg/rootvg"
	"github.com/power-devops/vios-altdisk/pkg/types"
)

// Request carries everything needed to choose or validate the target disks
// of one copy operation.
type Request struct {
	// Disks are the caller supplied targets. Empty means automatic
	// selection driven by Policy.
	Disks  []string
	Status *rootvg.Status
	Policy types.SizePolicy
	// Force allows removing a pre-existing alternate rootvg that would
	// otherwise block the copy.
	Force bool
}

// Selection is the outcome: the target disks in the order alt_disk_copy
// will receive them. Degraded is set when caller supplied disks were
// accepted although their combined size falls short of the full rootvg.
type Selection struct {
	Disks    []string
	Degraded bool
}

// Select validates or chooses the alternate disks for one copy. Cleanup
// commands issued for a conflicting alternate rootvg record their output
// in res.
func Select(ex types.Executor, req Request, res *types.Result) (*Selection, error) {
	if !req.Status.OK() {
		return nil, &types.UnsafeStateError{Reason: req.Status.Reason}
	}

	pvs, err := inventory.ListPhysicalVolumes(ex)
	if err != nil {
		return nil, err
	}
	if err := cleanConflicting(ex, pvs, req.Force, res); err != nil {
		return nil, err
	}

	free, err := inventory.ListFreePhysicalVolumes(ex)
	if err != nil {
		return nil, err
	}
	if len(free) == 0 {
		return nil, &types.NoCandidateError{Message: "no free disk available"}
	}

	if len(req.Disks) > 0 {
		return validateExplicit(req.Disks, free, req.Status)
	}
	return selectAutomatic(free, req.Status, req.Policy)
}

// cleanConflicting removes a leftover alternate rootvg so its disks show up
// as free again. Without force a leftover is a hard stop.
func cleanConflicting(ex types.Executor, pvs inventory.PhysicalVolumes, force bool, res *types.Result) error {
	members := pvs.InVolumeGroup(types.AltVolumeGroup)
	if len(members) == 0 {
		return nil
	}
	if !force {
		return &types.ConflictError{Disk: members[0]}
	}

	logrus.Infof("Removing existing %v installed on %v", types.AltVolumeGroup, members)
	stdout, stderr, err := lvm.RemoveAltVolumeGroup(ex)
	res.AppendOutput(stdout, stderr)
	if err != nil {
		return err
	}
	res.Changed = true

	for _, disk := range members {
		stdout, stderr, err := lvm.ClearOwningVolumeGroup(ex, disk)
		res.AppendOutput(stdout, stderr)
		if err != nil {
			return err
		}
	}
	return nil
}

func validateExplicit(disks []string, free inventory.FreePhysicalVolumes, status *rootvg.Status) (*Selection, error) {
	var totalMB int64
	for _, disk := range disks {
		pv, ok := free.Find(disk)
		if !ok {
			return nil, &types.ValidationError{
				Disk:    disk,
				Message: fmt.Sprintf("alternate disk %s is either not found or not available", disk),
			}
		}
		totalMB += pv.SizeMB
	}

	if totalMB >= status.TotalMB {
		return &Selection{Disks: disks}, nil
	}
	if totalMB < status.UsedMB {
		return nil, &types.CapacityError{TotalMB: totalMB, RequiredMB: status.TotalMB}
	}
	logrus.Warnf("Alternate disks smaller than the current rootvg (%v < %v)",
		units.BytesSize(float64(totalMB*units.MiB)), units.BytesSize(float64(status.TotalMB*units.MiB)))
	return &Selection{Disks: disks, Degraded: true}, nil
}

// selectAutomatic scans the free disks by ascending size and applies the
// policy at the first disk at least as large as the full rootvg, tracking
// the best smaller disk seen so far.
func selectAutomatic(free inventory.FreePhysicalVolumes, status *rootvg.Status, policy types.SizePolicy) (*Selection, error) {
	var (
		selected     string
		prevDisk     string
		prevDiffSize int64
	)

	for _, pv := range free.SortedBySize() {
		if pv.SizeMB < status.UsedMB {
			continue
		}
		if policy == types.PolicyMinimize {
			selected = pv.Name
			break
		}

		diffSize := pv.SizeMB - status.TotalMB
		if diffSize == 0 {
			selected = pv.Name
			break
		}
		if diffSize > 0 {
			switch policy {
			case types.PolicyUpper:
				selected = pv.Name
			case types.PolicyLower:
				if prevDisk == "" {
					// no disk smaller than the rootvg would do,
					// so take the first bigger one
					selected = pv.Name
				} else {
					selected = prevDisk
				}
			default:
				if prevDisk == "" || -prevDiffSize > diffSize {
					selected = pv.Name
				} else {
					selected = prevDisk
				}
			}
			break
		}
		prevDisk = pv.Name
		prevDiffSize = diffSize
	}

	if selected == "" {
		if prevDisk == "" {
			return nil, &types.NoCandidateError{
				Message: fmt.Sprintf("no available alternate disk with size greater than %d MB found", status.TotalMB),
			}
		}
		// every candidate is smaller than the full rootvg but can hold
		// the used space
		selected = prevDisk
	}

	logrus.Debugf("Selected disk is %v (select mode: %v)", selected, policy)
	return &Selection{Disks: []string{selected}}, nil
}
