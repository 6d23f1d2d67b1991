// internal/compare/inspect.go
package compare

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/CodeMeister99/QML-Compare/internal/api"
	"github.com/CodeMeister99/QML-Compare/internal/dataset"
	"github.com/CodeMeister99/QML-Compare/internal/logging"
)

// InspectOptions control what Inspect fetches.
type InspectOptions struct {
	Target   string
	DataType string
	Rows     int
	// Remote also asks the server for its own preview.
	Remote bool
	// SkipQuickcheck leaves the QuickCheck call out.
	SkipQuickcheck bool
}

// Inspection is everything known about a dataset before a run.
type Inspection struct {
	Preview       *dataset.Preview
	Remote        *api.Preview
	Target        string
	TargetNote    string
	Quickcheck    *api.QuickcheckResponse
	QuickcheckErr error
}

// Inspect previews the dataset locally, then runs QuickCheck (and the
// optional server preview) concurrently against the same target a run would
// use. A QuickCheck failure is kept in QuickcheckErr and does not fail Inspect.
func Inspect(ctx context.Context, svc Service, file api.Upload, opts InspectOptions) (*Inspection, error) {
	p, err := dataset.ParsePreview(file.Name, file.Data, opts.Rows)
	if err != nil {
		return nil, err
	}
	out := &Inspection{Preview: p}
	out.Target, out.TargetNote = dataset.GuessTarget(p, strings.TrimSpace(opts.Target))
	if svc == nil {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.Remote {
		g.Go(func() error {
			remote, err := svc.Preview(gctx, file)
			if err != nil {
				return err
			}
			out.Remote = remote
			return nil
		})
	}

	if !opts.SkipQuickcheck {
		g.Go(func() error {
			resp, err := svc.Quickcheck(gctx, file, api.QuickcheckOptions{Target: out.Target, DataType: opts.DataType})
			if err != nil {
				logging.LogEvent("quickcheck failed: %v", err)
				out.QuickcheckErr = err
				return nil
			}
			out.Quickcheck = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
