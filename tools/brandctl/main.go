// Command brandctl manages brands through the brand service admin API.
//
//	brandctl list [-q text] [-limit n] [-offset n]
//	brandctl get <id>
//	brandctl create -name <name> [-handle <handle>]
//	brandctl update [-name <name>] [-handle <handle>] <id>
//	brandctl delete <id>
//	brandctl link <id> <product_id>...
//	brandctl unlink <id> <product_id>...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/pkg/medusa"
)

// brandAPI is the part of the admin client brandctl drives.
type brandAPI interface {
	ListBrands(ctx context.Context, p medusa.ListParams) (*medusa.BrandList, error)
	GetBrand(ctx context.Context, id string) (*medusa.Brand, error)
	CreateBrand(ctx context.Context, in medusa.BrandInput) (*medusa.Brand, error)
	UpdateBrand(ctx context.Context, id string, in medusa.BrandInput) (*medusa.Brand, error)
	DeleteBrand(ctx context.Context, id string) error
	LinkBrandProducts(ctx context.Context, id string, add, remove []string) (*medusa.Brand, error)
}

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("BRAND_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8096"
	}
	client := medusa.NewClient(baseURL, 15*time.Second, medusa.WithAdminToken(os.Getenv("BRAND_ADMIN_TOKEN")))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	code := run(ctx, os.Args[1:], client, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, api brandAPI, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: brandctl <list|get|create|update|delete|link|unlink> [args]")
		return 2
	}

	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet("brandctl "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		out    any
		err    error
		action string
	)

	switch cmd {
	case "list":
		q := fs.String("q", "", "filter by name or handle")
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "page offset")
		if fs.Parse(rest) != nil {
			return 2
		}
		action = "List brands"
		out, err = api.ListBrands(ctx, medusa.ListParams{Limit: *limit, Offset: *offset, Q: *q})

	case "get":
		id, ok := requireID(fs, rest, stderr)
		if !ok {
			return 2
		}
		action = "Get brand"
		out, err = api.GetBrand(ctx, id)

	case "create":
		name := fs.String("name", "", "brand name")
		handle := fs.String("handle", "", "brand handle (derived from the name when empty)")
		if fs.Parse(rest) != nil {
			return 2
		}
		if *name == "" {
			fmt.Fprintln(stderr, "create: -name is required")
			return 2
		}
		action = "Create brand"
		out, err = api.CreateBrand(ctx, medusa.BrandInput{Name: *name, Handle: *handle})

	case "update":
		name := fs.String("name", "", "new brand name")
		handle := fs.String("handle", "", "new brand handle")
		id, ok := requireID(fs, rest, stderr)
		if !ok {
			return 2
		}
		if *name == "" && *handle == "" {
			fmt.Fprintln(stderr, "update: nothing to change")
			return 2
		}
		action = "Update brand"
		out, err = api.UpdateBrand(ctx, id, medusa.BrandInput{Name: *name, Handle: *handle})

	case "delete":
		id, ok := requireID(fs, rest, stderr)
		if !ok {
			return 2
		}
		action = "Delete brand"
		err = api.DeleteBrand(ctx, id)
		out = map[string]any{"id": id, "deleted": err == nil}

	case "link", "unlink":
		id, ok := requireID(fs, rest, stderr)
		if !ok {
			return 2
		}
		products := fs.Args()[1:]
		if len(products) == 0 {
			fmt.Fprintf(stderr, "%s: at least one product id is required\n", cmd)
			return 2
		}
		if cmd == "link" {
			action = "Link brand products"
			out, err = api.LinkBrandProducts(ctx, id, products, nil)
		} else {
			action = "Unlink brand products"
			out, err = api.LinkBrandProducts(ctx, id, nil, products)
		}

	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "%s failed!\n%v\n", action, err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "encode output: %v\n", err)
		return 1
	}
	return 0
}

// requireID parses flags and returns the first positional argument.
func requireID(fs *flag.FlagSet, args []string, stderr io.Writer) (string, bool) {
	if fs.Parse(args) != nil {
		return "", false
	}
	if fs.NArg() == 0 || fs.Arg(0) == "" {
		fmt.Fprintf(stderr, "%s: brand id is required\n", fs.Name())
		return "", false
	}
	return fs.Arg(0), true
}
