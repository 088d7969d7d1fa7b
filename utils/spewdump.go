package utils

import (
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

func SDump(a ...interface{}) string {
	return spewConfig.Sdump(a...)
}

func LogDump(a ...interface{}) {
	log.Println(spewConfig.Sdump(a...))
}

func DumpToFile(path string, a ...interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create dump %q", path)
	}
	defer f.Close()
	spewConfig.Fdump(f, a...)
	return nil
}
