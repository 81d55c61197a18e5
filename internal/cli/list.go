package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"loyaltyadmin/internal/apiclient"
	"loyaltyadmin/internal/listquery"
	"loyaltyadmin/internal/view"

	"github.com/spf13/cobra"
)

// listOptions are the flags shared by every collection's list command.
type listOptions struct {
	page       int
	limit      int
	sortField  string
	sortOrder  string
	search     string
	outputJSON bool
	width      int
}

func (o *listOptions) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.page, "page", 1, "Page to fetch (1-based)")
	cmd.Flags().IntVar(&o.limit, "limit", 0, "Page size (0 = configured default)")
	cmd.Flags().StringVar(&o.sortField, "sort", "", "Sort field (remembered between runs)")
	cmd.Flags().StringVar(&o.sortOrder, "order", "asc", "Sort order: asc or desc")
	cmd.Flags().StringVar(&o.search, "search", "", "Free-text search term")
	cmd.Flags().BoolVarP(&o.outputJSON, "json", "J", false, "Output as JSON")
	cmd.Flags().IntVar(&o.width, "width", 120, "Terminal width for layout selection")
}

const fetchTimeout = 30 * time.Second

// runList drives one controller through a single fetch cycle and renders
// the resulting page.
func runList[T any](ctx context.Context, entity, itemsKey, totalKey, searchField string, layout view.List[T], filters map[string]string, opts listOptions) error {
	client := newAPIClient()
	source := apiclient.NewListSource[T](client, entity, itemsKey, totalKey, searchField)

	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	store := listquery.NewFileStore(cfg.SortStatePath())

	// An explicit --sort wins over the remembered preference.
	if opts.sortField != "" {
		order := opts.sortOrder
		if order != "desc" {
			order = "asc"
		}
		_ = store.Set(entity+"_sort_orderBy", opts.sortField)
		_ = store.Set(entity+"_sort_order", order)
	}

	updates := make(chan struct{}, 1)
	ctrl := listquery.NewController[T](ctx, listquery.Config{
		Entity:          entity,
		DefaultPageSize: cfg.PageSize,
		Store:           store,
		OnUpdate: func() {
			select {
			case updates <- struct{}{}:
			default:
			}
		},
	}, source)
	defer ctrl.Close()

	if len(filters) > 0 {
		ctrl.SetFilters(filters)
	}
	if opts.limit > 0 {
		ctrl.SetPageSize(opts.limit)
	}
	if opts.search != "" {
		ctrl.SetSearchTerm(opts.search)
		ctrl.FlushSearch()
	}
	if opts.page > 1 {
		ctrl.SetPage(opts.page)
	}
	ctrl.Refresh()

	snap, err := awaitSnapshot(ctx, ctrl, updates)
	if err != nil {
		return err
	}
	if snap.State == listquery.StateError && !snap.HasData {
		return fmt.Errorf("fetch %s: %w", entity, snap.Err)
	}

	if opts.outputJSON {
		data, err := json.MarshalIndent(snap.Data.Items, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	layout.Render(os.Stdout, snap, nil, opts.width)
	for name, value := range snap.Data.Aggregates {
		fmt.Printf("%s: %g\n", name, value)
	}
	return nil
}

// awaitSnapshot blocks until the controller settles out of the fetching
// state.
func awaitSnapshot[T any](ctx context.Context, ctrl *listquery.Controller[T], updates <-chan struct{}) (listquery.Snapshot[T], error) {
	deadline := time.NewTimer(fetchTimeout)
	defer deadline.Stop()

	for {
		snap := ctrl.Snapshot()
		if snap.State != listquery.StateFetching {
			return snap, nil
		}
		select {
		case <-updates:
		case <-ctx.Done():
			return snap, ctx.Err()
		case <-deadline.C:
			return snap, fmt.Errorf("timed out waiting for the server")
		}
	}
}

// runDelete removes the id set in one batched request, going through the
// controller so the cached pages are invalidated.
func runDelete[T any](ctx context.Context, entity, itemsKey, totalKey string, ids []int64) error {
	if len(ids) == 0 {
		return fmt.Errorf("at least one id is required")
	}
	client := newAPIClient()
	source := apiclient.NewListSource[T](client, entity, itemsKey, totalKey, "")

	ctrl := listquery.NewController[T](ctx, listquery.Config{
		Entity:          entity,
		DefaultPageSize: cfg.PageSize,
	}, source)
	defer ctrl.Close()

	selection := listquery.NewSelection()
	for _, id := range ids {
		selection.ToggleOne(id)
	}

	mut := listquery.NewMutator(source, ctrl, selection, listquery.NopNotifier{})
	if len(ids) == 1 {
		if err := mut.DeleteOne(ctx, ids[0]); err != nil {
			return err
		}
	} else if err := mut.DeleteMany(ctx, selection.IDs()); err != nil {
		return err
	}

	fmt.Printf("Deleted %d %s\n", len(ids), entity)
	return nil
}

func runImport[T any](ctx context.Context, entity, itemsKey, totalKey, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	client := newAPIClient()
	source := apiclient.NewListSource[T](client, entity, itemsKey, totalKey, "")

	count, err := source.Import(ctx, path, f)
	if err != nil {
		return fmt.Errorf("import %s: %w", entity, err)
	}
	fmt.Printf("Imported %d %s\n", count, entity)
	return nil
}
