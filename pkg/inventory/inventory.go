package inventory

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/power-devops/vios-altdisk/pkg/lvm"
	"github.com/power-devops/vios-altdisk/pkg/types"
)

// PhysicalVolume is one row of the `lspv` listing.
type PhysicalVolume struct {
	Name        string `json:"name"`
	PVID        string `json:"pvid"`
	VolumeGroup string `json:"volumeGroup"`
	Status      string `json:"status"`
}

// PhysicalVolumes preserves the listing order of the VIOS, which later
// selection steps rely on for deterministic results.
type PhysicalVolumes []PhysicalVolume

// FreePhysicalVolume is one row of the `lspv -free` listing. SizeMB is the
// usable size in megabytes.
type FreePhysicalVolume struct {
	Name   string `json:"name"`
	PVID   string `json:"pvid"`
	SizeMB int64  `json:"sizeMB"`
}

type FreePhysicalVolumes []FreePhysicalVolume

var (
	// disk name, pvid, volume group and an optional status column
	pvRowPattern = regexp.MustCompile(`^(hdisk\S+)\s+(\S+)\s+(\S+)\s*(\S*)`)
	// disk name, pvid and size in megabytes
	freeRowPattern = regexp.MustCompile(`^(hdisk\S+)\s+(\S+)\s+(\d+)`)
)

// ListPhysicalVolumes returns every physical volume known to the VIOS, in
// the order the system reports them.
func ListPhysicalVolumes(ex types.Executor) (PhysicalVolumes, error) {
	stdout, _, err := lvm.ListPhysicalVolumes(ex)
	if err != nil {
		return nil, err
	}
	return parsePhysicalVolumes(stdout), nil
}

// ListFreePhysicalVolumes returns the disks that belong to no volume group
// and can serve as alternate disks.
func ListFreePhysicalVolumes(ex types.Executor) (FreePhysicalVolumes, error) {
	stdout, _, err := lvm.ListFreePhysicalVolumes(ex)
	if err != nil {
		return nil, err
	}
	return parseFreePhysicalVolumes(stdout), nil
}

func parsePhysicalVolumes(text string) PhysicalVolumes {
	var pvs PhysicalVolumes
	for _, line := range strings.Split(text, "\n") {
		m := pvRowPattern.FindStringSubmatch(strings.TrimRight(line, " \t\r"))
		if m == nil {
			continue
		}
		pvs = append(pvs, PhysicalVolume{
			Name:        m[1],
			PVID:        m[2],
			VolumeGroup: m[3],
			Status:      m[4],
		})
	}
	return pvs
}

func parseFreePhysicalVolumes(text string) FreePhysicalVolumes {
	var pvs FreePhysicalVolumes
	for _, line := range strings.Split(text, "\n") {
		m := freeRowPattern.FindStringSubmatch(strings.TrimRight(line, " \t\r"))
		if m == nil {
			continue
		}
		size, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			continue
		}
		pvs = append(pvs, FreePhysicalVolume{
			Name:   m[1],
			PVID:   m[2],
			SizeMB: size,
		})
	}
	return pvs
}

// Find returns the row for the named disk.
func (pvs PhysicalVolumes) Find(name string) (PhysicalVolume, bool) {
	for _, pv := range pvs {
		if pv.Name == name {
			return pv, true
		}
	}
	return PhysicalVolume{}, false
}

// InVolumeGroup returns the names of the disks assigned to vg, in listing
// order.
func (pvs PhysicalVolumes) InVolumeGroup(vg string) []string {
	var names []string
	for _, pv := range pvs {
		if pv.VolumeGroup == vg {
			names = append(names, pv.Name)
		}
	}
	return names
}

// Find returns the row for the named disk.
func (pvs FreePhysicalVolumes) Find(name string) (FreePhysicalVolume, bool) {
	for _, pv := range pvs {
		if pv.Name == name {
			return pv, true
		}
	}
	return FreePhysicalVolume{}, false
}

// SortedBySize returns a copy ordered by ascending size. Disks of equal
// size keep their listing order, so repeated runs pick the same disk.
func (pvs FreePhysicalVolumes) SortedBySize() FreePhysicalVolumes {
	sorted := make(FreePhysicalVolumes, len(pvs))
	copy(sorted, pvs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SizeMB < sorted[j].SizeMB
	})
	return sorted
}
