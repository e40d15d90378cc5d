package inventory

import (
	"testing"

	"github.com/power-devops/vios-altdisk/pkg/types"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type TestSuite struct{}

var _ = Suite(&TestSuite{})

type fakeResponse struct {
	stdout string
	stderr string
	err    error
}

type fakeExecutor struct {
	responses map[string]fakeResponse
}

func (f *fakeExecutor) Execute(binary string, args []string) (string, string, error) {
	line := types.CommandLine(binary, args)
	r, ok := f.responses[line]
	if !ok {
		return "", "", &types.CommandError{Command: line, ExitCode: 1, Reason: "unexpected command " + line}
	}
	return r.stdout, r.stderr, r.err
}

const lspvOutput = `NAME             PVID                                 VG               STATUS
hdisk0           00f9fd4bf0d452e4                     rootvg           active
hdisk1           00f9fd4bf8ea9c85                     altinst_rootvg
hdisk2           none                                 None
cd0              none                                 None
`

const lspvFreeOutput = `NAME            PVID                                SIZE(megabytes)
hdisk2          none                                51200
hdisk3          00f9fd4bc9f21a3b                    20480
hdisk4          none                                20480
`

func (s *TestSuite) TestListPhysicalVolumes(c *C) {
	f := &fakeExecutor{responses: map[string]fakeResponse{
		"/usr/ios/cli/ioscli lspv": {stdout: lspvOutput},
	}}

	pvs, err := ListPhysicalVolumes(f)
	c.Assert(err, IsNil)
	c.Assert(pvs, DeepEquals, PhysicalVolumes{
		{Name: "hdisk0", PVID: "00f9fd4bf0d452e4", VolumeGroup: "rootvg", Status: "active"},
		{Name: "hdisk1", PVID: "00f9fd4bf8ea9c85", VolumeGroup: "altinst_rootvg", Status: ""},
		{Name: "hdisk2", PVID: "none", VolumeGroup: "None", Status: ""},
	})
}

func (s *TestSuite) TestListPhysicalVolumesEmpty(c *C) {
	f := &fakeExecutor{responses: map[string]fakeResponse{
		"/usr/ios/cli/ioscli lspv": {stdout: "NAME  PVID  VG  STATUS\n"},
	}}

	pvs, err := ListPhysicalVolumes(f)
	c.Assert(err, IsNil)
	c.Assert(pvs, HasLen, 0)
}

func (s *TestSuite) TestListPhysicalVolumesCommandFailure(c *C) {
	f := &fakeExecutor{responses: map[string]fakeResponse{}}

	_, err := ListPhysicalVolumes(f)
	c.Assert(err, NotNil)
	c.Assert(types.IsCommandError(err), Equals, true)
}

func (s *TestSuite) TestListFreePhysicalVolumes(c *C) {
	f := &fakeExecutor{responses: map[string]fakeResponse{
		"/usr/ios/cli/ioscli lspv -free": {stdout: lspvFreeOutput},
	}}

	pvs, err := ListFreePhysicalVolumes(f)
	c.Assert(err, IsNil)
	c.Assert(pvs, DeepEquals, FreePhysicalVolumes{
		{Name: "hdisk2", PVID: "none", SizeMB: 51200},
		{Name: "hdisk3", PVID: "00f9fd4bc9f21a3b", SizeMB: 20480},
		{Name: "hdisk4", PVID: "none", SizeMB: 20480},
	})
}

func (s *TestSuite) TestListFreePhysicalVolumesSkipsMalformedRows(c *C) {
	f := &fakeExecutor{responses: map[string]fakeResponse{
		"/usr/ios/cli/ioscli lspv -free": {stdout: "hdisk9 none not-a-size\nhdisk5 none 1024\n"},
	}}

	pvs, err := ListFreePhysicalVolumes(f)
	c.Assert(err, IsNil)
	c.Assert(pvs, DeepEquals, FreePhysicalVolumes{
		{Name: "hdisk5", PVID: "none", SizeMB: 1024},
	})
}

func (s *TestSuite) TestFind(c *C) {
	pvs := PhysicalVolumes{
		{Name: "hdisk0", VolumeGroup: "rootvg"},
		{Name: "hdisk1", VolumeGroup: "altinst_rootvg"},
	}

	pv, ok := pvs.Find("hdisk1")
	c.Assert(ok, Equals, true)
	c.Assert(pv.VolumeGroup, Equals, "altinst_rootvg")

	_, ok = pvs.Find("hdisk9")
	c.Assert(ok, Equals, false)
}

func (s *TestSuite) TestInVolumeGroup(c *C) {
	pvs := PhysicalVolumes{
		{Name: "hdisk0", VolumeGroup: "rootvg"},
		{Name: "hdisk1", VolumeGroup: "altinst_rootvg"},
		{Name: "hdisk2", VolumeGroup: "None"},
		{Name: "hdisk3", VolumeGroup: "altinst_rootvg"},
	}

	c.Assert(pvs.InVolumeGroup("altinst_rootvg"), DeepEquals, []string{"hdisk1", "hdisk3"})
	c.Assert(pvs.InVolumeGroup("datavg"), HasLen, 0)
}

func (s *TestSuite) TestSortedBySize(c *C) {
	pvs := FreePhysicalVolumes{
		{Name: "hdisk7", SizeMB: 20480},
		{Name: "hdisk3", SizeMB: 10240},
		{Name: "hdisk5", SizeMB: 20480},
	}

	sorted := pvs.SortedBySize()
	c.Assert(sorted[0].Name, Equals, "hdisk3")
	// equal sizes keep their listing order
	c.Assert(sorted[1].Name, Equals, "hdisk7")
	c.Assert(sorted[2].Name, Equals, "hdisk5")

	// the original listing order is untouched
	c.Assert(pvs[0].Name, Equals, "hdisk7")
}
