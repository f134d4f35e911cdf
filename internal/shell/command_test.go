package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]struct {
		line     string
		expected *Command
	}{
		"program only": {
			line:     "ls",
			expected: &Command{Program: "ls", Args: []string{"ls"}},
		},
		"arguments and runs of whitespace": {
			line:     "  ls \t -la   /tmp \n",
			expected: &Command{Program: "ls", Args: []string{"ls", "-la", "/tmp"}},
		},
		"redirections in any order": {
			line: "sort > out.txt -r < in.txt",
			expected: &Command{
				Program:        "sort",
				Args:           []string{"sort", "-r"},
				InputRedirect:  "in.txt",
				OutputRedirect: "out.txt",
			},
		},
		"trailing ampersand": {
			line:     "sleep 5 &",
			expected: &Command{Program: "sleep", Args: []string{"sleep", "5"}, Background: true},
		},
		"ampersand after redirection": {
			line: "wc < in > out &",
			expected: &Command{
				Program:        "wc",
				Args:           []string{"wc"},
				InputRedirect:  "in",
				OutputRedirect: "out",
				Background:     true,
			},
		},
		"ampersand not last is an argument": {
			line:     "echo a & b",
			expected: &Command{Program: "echo", Args: []string{"echo", "a", "&", "b"}},
		},
		"ampersand glued to a word is an argument": {
			line:     "echo a&",
			expected: &Command{Program: "echo", Args: []string{"echo", "a&"}},
		},
		"marker expanded everywhere": {
			line: "$$ x$$ < in$$ > out$$",
			expected: &Command{
				Program:        "7",
				Args:           []string{"7", "x7"},
				InputRedirect:  "in7",
				OutputRedirect: "out7",
			},
		},
		"last redirection wins": {
			line:     "cat < a < b",
			expected: &Command{Program: "cat", Args: []string{"cat"}, InputRedirect: "b"},
		},
		"hash inside a line is an argument": {
			line:     "echo #not-a-comment",
			expected: &Command{Program: "echo", Args: []string{"echo", "#not-a-comment"}},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cmd, err := Parse(tc.line, 7)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cmd)
		})
	}
}

func TestParseNoCommand(t *testing.T) {
	for _, line := range []string{"", "\n", "   \t ", "#", "# a comment", "  #indented comment"} {
		cmd, err := Parse(line, 1)
		assert.NoError(t, err, "%q", line)
		assert.Nil(t, cmd, "%q", line)
	}
}

func TestParseDanglingRedirect(t *testing.T) {
	for _, line := range []string{"cat <", "echo hi >", "cat < in >"} {
		cmd, err := Parse(line, 1)
		assert.Nil(t, cmd, line)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, line)
		assert.ErrorIs(t, err, ErrDanglingRedirect)
	}
}
