package preflight

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"speciesmap/internal/areas"
	"speciesmap/internal/config"
	"speciesmap/internal/session"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckReferenceAreas loads the reference polygons and reports how many areas they define.
func CheckReferenceAreas(path, nameProperty string) Result {
	const name = "Reference areas"

	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	set, err := areas.Load(path, nameProperty)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (%d areas, %s)", path, set.Len(), humanize.Bytes(uint64(info.Size()))),
	}
}

// CheckSessionStore opens the session database, which also applies pending schema setup.
func CheckSessionStore(ctx context.Context, cfg *config.Config) Result {
	const name = "Session store"

	store, err := session.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.SessionDBPath(), err)}
	}
	defer store.Close()

	loaded, err := store.LoadDataset(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", store.Path(), err)}
	}
	if loaded == nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (no dataset loaded)", store.Path())}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (%d records from %s)", store.Path(), len(loaded.Dataset.Records), loaded.Dataset.Source),
	}
}
