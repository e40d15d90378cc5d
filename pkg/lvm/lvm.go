package lvm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/power-devops/vios-altdisk/pkg/types"
)

const (
	iosCLIBinary      = "/usr/ios/cli/ioscli"
	lsvgBinary        = "/usr/sbin/lsvg"
	unmirrorvgBinary  = "/usr/sbin/unmirrorvg"
	mirrorvgBinary    = "/usr/sbin/mirrorvg"
	altRootVgOpBinary = "/usr/sbin/alt_rootvg_op"
	chpvBinary        = "/usr/sbin/chpv"
	altDiskCopyBinary = "alt_disk_copy"
)

const (
	unmirroredMarker   = " successfully unmirrored"
	mirrorFailedMarker = "Failed to mirror the volume group"
)

// ListPhysicalVolumes returns the raw `lspv` listing of every physical
// volume known to the VIOS.
func ListPhysicalVolumes(ex types.Executor) (string, string, error) {
	return ex.Execute(iosCLIBinary, []string{"lspv"})
}

// ListFreePhysicalVolumes returns the raw `lspv -free` listing of disks
// that belong to no volume group.
func ListFreePhysicalVolumes(ex types.Executor) (string, string, error) {
	return ex.Execute(iosCLIBinary, []string{"lspv", "-free"})
}

// MirrorMap returns the logical partition to physical partition map of vg,
// one line per partition copy.
func MirrorMap(ex types.Executor, vg string) (string, string, error) {
	return ex.Execute(lsvgBinary, []string{"-M", vg})
}

// PartitionCounts returns the per-disk physical partition table of vg.
func PartitionCounts(ex types.Executor, vg string) (string, string, error) {
	return ex.Execute(lsvgBinary, []string{"-p", vg})
}

// Describe returns the characteristics summary of vg, including the total
// size and the physical partition size.
func Describe(ex types.Executor, vg string) (string, string, error) {
	return ex.Execute(lsvgBinary, []string{vg})
}

// Unmirror reduces vg to a single copy. unmirrorvg reports its outcome
// through a message on stderr, so a zero exit status without that message
// is still treated as a failure.
func Unmirror(ex types.Executor, vg string) (string, string, error) {
	opts := []string{vg}
	stdout, stderr, err := ex.Execute(unmirrorvgBinary, opts)
	if err != nil {
		return stdout, stderr, err
	}
	if !strings.Contains(stderr, vg+unmirroredMarker) {
		return stdout, stderr, &types.CommandError{
			Command: types.CommandLine(unmirrorvgBinary, opts),
			Stdout:  stdout,
			Stderr:  stderr,
			Reason:  fmt.Sprintf("failed to unmirror %s", vg),
		}
	}
	return stdout, stderr, nil
}

// Mirror restores copies of vg onto disks, honoring the exact mapping given
// by the disk order. mirrorvg can exit zero and still report a failure on
// stderr, so the stream is checked as well.
func Mirror(ex types.Executor, vg string, copies int, disks []string) (string, string, error) {
	opts := []string{
		"-m",
		"-c", strconv.Itoa(copies),
		vg,
	}
	opts = append(opts, disks...)
	stdout, stderr, err := ex.Execute(mirrorvgBinary, opts)
	if err != nil {
		return stdout, stderr, err
	}
	if strings.Contains(stderr, mirrorFailedMarker) {
		return stdout, stderr, &types.CommandError{
			Command: types.CommandLine(mirrorvgBinary, opts),
			Stdout:  stdout,
			Stderr:  stderr,
			Reason:  fmt.Sprintf("failed to mirror %s", vg),
		}
	}
	return stdout, stderr, nil
}

// CopyToAltDisk clones the running rootvg onto disks without changing the
// boot list. alt_disk_copy expects the target disks as one space separated
// argument.
func CopyToAltDisk(ex types.Executor, disks []string) (string, string, error) {
	return ex.Execute(altDiskCopyBinary, []string{"-B", "-d", strings.Join(disks, " ")})
}

// RemoveAltVolumeGroup drops the altinst_rootvg definition from the system
// without touching the disk content.
func RemoveAltVolumeGroup(ex types.Executor) (string, string, error) {
	return ex.Execute(altRootVgOpBinary, []string{"-X", types.AltVolumeGroup})
}

// ClearOwningVolumeGroup clears the volume group ownership information from
// disk so it shows up as free again.
func ClearOwningVolumeGroup(ex types.Executor, disk string) (string, string, error) {
	return ex.Execute(chpvBinary, []string{"-C", disk})
}
