package rootvg

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/power-devops/vios-altdisk/pkg/lvm"
	"github.com/power-devops/vios-altdisk/pkg/types"
)

type State string

const (
	// StateOK means the rootvg can be saved in an alternate disk copy.
	StateOK = State("ok")
	// StateUnsafe means the rootvg layout prevents an alternate disk copy.
	StateUnsafe = State("unsafe")
)

// Status describes the running rootvg as seen by one inspection. Copies
// maps each mirror copy number to the single disk holding that copy. Sizes
// are in megabytes; for a mirrored rootvg TotalMB covers one copy only.
type Status struct {
	State   State          `json:"state"`
	Reason  string         `json:"reason,omitempty"`
	Copies  map[int]string `json:"copies"`
	TotalMB int64          `json:"totalSizeMB"`
	UsedMB  int64          `json:"usedSizeMB"`
}

func (s *Status) OK() bool {
	return s.State == StateOK
}

func (s *Status) Mirrored() bool {
	return len(s.Copies) > 1
}

const (
	staleMarker = "stale"

	reasonStale      = "rootvg contains stale partitions"
	reasonColocated  = "rootvg data structure is not compatible with an alt_disk_copy operation (2 copies on the same disk)"
	reasonIncoherent = "rootvg data structure is not compatible with an alt_disk_copy operation"
	reasonSpread     = "the rootvg is partially or completely mirrored but some LP copies are spread on several disks"
)

var (
	// hdisk4:453      hd1:101:2
	mirroredRowPattern = regexp.MustCompile(`^(\S+):\d+\s+\S+:\d+:(\d+)$`)
	// hdisk4:453      hd1:101
	primaryRowPattern = regexp.MustCompile(`^(\S+):\d+\s+\S+:\d+$`)
	// hdisk4            active            639         254         126..00..00..00..128
	partitionRowPattern = regexp.MustCompile(`^(\S+)\s+\S+\s+(\d+)\s+\d+\s+\S+`)
	// TOTAL PPs:           639 (20448 megabytes)
	totalPattern = regexp.MustCompile(`TOTAL PPs:\s+\d+\s+\((\d+)\s+megabytes\)`)
	// PP SIZE:             32 megabyte(s)
	ppSizePattern = regexp.MustCompile(`PP SIZE:\s+(\d+)\s+megabyte\(s\)`)
)

// Inspect examines the running rootvg and reports whether it can be cloned,
// which disk holds which mirror copy, and its total and used size. Layout
// problems come back as an unsafe Status, while command and parsing
// failures come back as errors.
func Inspect(ex types.Executor) (*Status, error) {
	status := &Status{
		State:  StateOK,
		Copies: map[int]string{},
	}

	mapText, _, err := lvm.MirrorMap(ex, types.RootVolumeGroup)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get the partition map of %s", types.RootVolumeGroup)
	}

	if strings.Contains(mapText, staleMarker) {
		status.State = StateUnsafe
		status.Reason = reasonStale
		return status, nil
	}

	primaryLPs, reason := walkMirrorMap(mapText, status.Copies)
	if reason == "" && status.Mirrored() {
		reason = checkMirrorLayout(status.Copies)
	}
	if reason != "" {
		status.State = StateUnsafe
		status.Reason = reason
		return status, nil
	}

	var pvTotalPPs int64
	if status.Mirrored() {
		countText, _, err := lvm.PartitionCounts(ex, types.RootVolumeGroup)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get the physical volume list of %s", types.RootVolumeGroup)
		}
		pvTotalPPs, err = parsePartitionCount(countText, status.Copies[1])
		if err != nil {
			return nil, err
		}
	}

	summaryText, _, err := lvm.Describe(ex, types.RootVolumeGroup)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get the characteristics of %s", types.RootVolumeGroup)
	}
	totalMB, ppSizeMB, err := parseSummary(summaryText)
	if err != nil {
		return nil, err
	}

	if status.Mirrored() {
		// one copy spans exactly one disk, so the size of the copy-1
		// disk is the size a single unmirrored copy would need
		totalMB = ppSizeMB * pvTotalPPs
	}
	status.TotalMB = totalMB
	// one extra partition for the boot logical volume the clone adds
	status.UsedMB = ppSizeMB * (primaryLPs + 1)
	return status, nil
}

// walkMirrorMap fills copies from the partition map and counts the logical
// partitions of copy 1. A non-empty reason means the layout cannot be
// cloned.
func walkMirrorMap(text string, copies map[int]string) (int64, string) {
	var primaryLPs int64
	diskCopy := map[string]int{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")

		var disk string
		var copyNum int
		if m := mirroredRowPattern.FindStringSubmatch(line); m != nil {
			disk = m[1]
			copyNum, _ = strconv.Atoi(m[2])
		} else if m := primaryRowPattern.FindStringSubmatch(line); m != nil {
			disk = m[1]
			copyNum = 1
		} else {
			continue
		}

		if copyNum == 1 {
			primaryLPs++
		}

		if seen, ok := diskCopy[disk]; ok {
			if seen != copyNum {
				return primaryLPs, reasonColocated
			}
		} else {
			diskCopy[disk] = copyNum
		}

		if _, ok := copies[copyNum]; !ok {
			for _, assigned := range copies {
				if assigned == disk {
					return primaryLPs, reasonIncoherent
				}
			}
			copies[copyNum] = disk
		}
	}

	if len(copies) > 1 && len(copies) != len(diskCopy) {
		return primaryLPs, reasonSpread
	}
	return primaryLPs, ""
}

// checkMirrorLayout verifies the copy numbers run from 1 without gaps, so
// the mirror can be suspended and restored from the recorded disks.
func checkMirrorLayout(copies map[int]string) string {
	for i := 1; i <= len(copies); i++ {
		if _, ok := copies[i]; !ok {
			return reasonIncoherent
		}
	}
	return ""
}

// parsePartitionCount returns the total physical partition count of disk
// from the `lsvg -p` table.
func parsePartitionCount(text, disk string) (int64, error) {
	for _, line := range strings.Split(text, "\n") {
		m := partitionRowPattern.FindStringSubmatch(strings.TrimRight(line, " \t\r"))
		if m == nil || m[1] != disk {
			continue
		}
		count, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			break
		}
		return count, nil
	}
	return 0, &types.ParseError{What: "pv size"}
}

// parseSummary extracts the total size and the physical partition size, in
// megabytes, from the `lsvg` characteristics output.
func parseSummary(text string) (int64, int64, error) {
	totalMB := int64(-1)
	ppSizeMB := int64(-1)
	for _, line := range strings.Split(text, "\n") {
		if m := totalPattern.FindStringSubmatch(line); m != nil {
			totalMB, _ = strconv.ParseInt(m[1], 10, 64)
			continue
		}
		if m := ppSizePattern.FindStringSubmatch(line); m != nil {
			ppSizeMB, _ = strconv.ParseInt(m[1], 10, 64)
		}
	}
	if ppSizeMB == -1 {
		return 0, 0, &types.ParseError{What: "rootvg pp size"}
	}
	if totalMB == -1 {
		return 0, 0, &types.ParseError{What: "rootvg total size"}
	}
	return totalMB, ppSizeMB, nil
}
