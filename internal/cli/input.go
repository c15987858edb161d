package cli

import (
	"fmt"
	"io"
	"os"
)

// openInputs opens the named files, with "-" standing for stdin.
// The returned function closes all opened files.
func openInputs(stdin io.Reader, names []string) ([]io.Reader, func(), error) {
	var files []*os.File

	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	inputs := make([]io.Reader, 0, len(names))

	for _, name := range names {
		if name == "-" {
			inputs = append(inputs, stdin)
			continue
		}

		f, err := os.Open(name)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open input: %w", err)
		}

		files = append(files, f)
		inputs = append(inputs, f)
	}

	return inputs, closeAll, nil
}
