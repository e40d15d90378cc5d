package util

import (
	"testing"

	"github.com/power-devops/vios-altdisk/pkg/types"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type TestSuite struct{}

var _ = Suite(&TestSuite{})

func (s *TestSuite) TestExecuteSplitsStreams(c *C) {
	ex := NewCmdExecutor()

	stdout, stderr, err := ex.Execute("sh", []string{"-c", "echo out; echo err >&2"})
	c.Assert(err, IsNil)
	c.Assert(stdout, Equals, "out\n")
	c.Assert(stderr, Equals, "err\n")
}

func (s *TestSuite) TestExecuteNonZeroExit(c *C) {
	ex := NewCmdExecutor()

	stdout, stderr, err := ex.Execute("sh", []string{"-c", "echo partial; echo broken >&2; exit 3"})
	c.Assert(err, NotNil)
	c.Assert(types.IsCommandError(err), Equals, true)

	cmdErr := err.(*types.CommandError)
	c.Assert(cmdErr.ExitCode, Equals, 3)
	c.Assert(cmdErr.Stdout, Equals, "partial\n")
	c.Assert(cmdErr.Stderr, Equals, "broken\n")
	c.Assert(stdout, Equals, "partial\n")
	c.Assert(stderr, Equals, "broken\n")
}

func (s *TestSuite) TestExecuteMissingBinary(c *C) {
	ex := NewCmdExecutor()

	_, _, err := ex.Execute("no-such-binary-for-sure", []string{"-x"})
	c.Assert(err, NotNil)
	c.Assert(types.IsCommandError(err), Equals, true)
	c.Assert(err.(*types.CommandError).ExitCode, Equals, -1)
}

func (s *TestSuite) TestUUID(c *C) {
	id := UUID()
	c.Assert(id, HasLen, 36)
	c.Assert(id, Not(Equals), UUID())
}
