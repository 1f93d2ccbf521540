package main

import (
	"bufio"
	"os"
	"strings"
)

// splitArgsLine splits a line into arguments on blanks, keeping single- or
// double-quoted runs together.
func splitArgsLine(line string) []string {
	var args []string
	var current strings.Builder
	var quote rune
	inArg := false

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if inArg {
		args = append(args, current.String())
	}
	return args
}

// readListFile returns the non-blank lines of a file that do not start
// with '#'.
func readListFile(path string) ([]string, error) {
	file, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

// loadArgsFile reads command-line arguments from a file, one or more per
// line.
func loadArgsFile(path string) ([]string, error) {
	lines, err := readListFile(path)
	if err != nil {
		return nil, err
	}
	var args []string
	for _, line := range lines {
		args = append(args, splitArgsLine(line)...)
	}
	return args, nil
}

// loadFileList reads input file names, one per line.
func loadFileList(path string) ([]string, error) {
	return readListFile(path)
}

// loadArgsFromFileIfSpecified replaces "-A file" in args with the
// arguments the file holds.
func loadArgsFromFileIfSpecified(args []string) ([]string, error) {
	for i := 0; i < len(args); i++ {
		var path string
		switch {
		case (args[i] == "-A" || args[i] == "--A") && i+1 < len(args):
			path = args[i+1]
		case strings.HasPrefix(args[i], "-A="):
			path = strings.TrimPrefix(args[i], "-A=")
		default:
			continue
		}

		loaded, err := loadArgsFile(path)
		if err != nil {
			return nil, err
		}
		end := i + 1
		if !strings.HasPrefix(args[i], "-A=") {
			end = i + 2
		}
		out := append([]string{}, args[:i]...)
		out = append(out, loaded...)
		return append(out, args[end:]...), nil
	}
	return args, nil
}
