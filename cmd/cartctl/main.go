package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-catalog-cart.git/internal/cart"
	"github.com/ariefcatur/go-catalog-cart.git/internal/cartstate"
	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
	"github.com/ariefcatur/go-catalog-cart.git/internal/client"
)

// cartctl keeps a local cart (one JSON blob under CART_DIR) and talks to
// the API for stock checks and full-cart validation.

const usage = `usage: cartctl [-api URL] <command>

commands:
  add <itemId> <qty>   check stock, then add to the local cart
  set <itemId> <qty>   set a line's quantity (0 removes it)
  remove <itemId>      drop a line
  clear                empty the cart
  show                 print lines and totals
  validate             validate the whole cart against live stock
`

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", getenv("API_URL", "http://localhost:8080"), "API base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	storage, err := cartstate.NewFileStorage(cartDir())
	if err != nil {
		fatal("open cart storage: %v", err)
	}
	store := cartstate.NewStore(storage)
	api := client.New(*apiURL, os.Getenv("API_TOKEN"))
	ctx := context.Background()

	switch args[0] {
	case "add":
		cmdAdd(ctx, store, api, args[1:])
	case "set":
		cmdSet(store, args[1:])
	case "remove":
		if len(args) != 2 {
			fatal("usage: cartctl remove <itemId>")
		}
		if err := store.Remove(args[1]); err != nil {
			fatal("remove: %v", err)
		}
	case "clear":
		if err := store.Clear(); err != nil {
			fatal("clear: %v", err)
		}
	case "show":
		cmdShow(ctx, store, api)
	case "validate":
		cmdValidate(ctx, store, api)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func cmdAdd(ctx context.Context, store *cartstate.Store, api *client.Client, args []string) {
	itemID, qty := parseItemQty(args, "add")

	// check stock before the line lands in the cart
	res, err := api.CheckStock(ctx, itemID, qty)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			fatal("item %s not found", itemID)
		}
		fatal("check stock: %v", err)
	}
	if !res.Available {
		fatal("insufficient stock for %s: available %d, requested %d",
			itemID, res.AvailableStock, res.RequestedQuantity)
	}

	// cache the snapshot for offline display; best effort
	var snapshot *catalog.Item
	if it, err := api.GetItem(ctx, itemID); err == nil {
		snapshot = &it
	}

	if err := store.Add(itemID, qty, snapshot); err != nil {
		fatal("add: %v", err)
	}
	fmt.Printf("added %d x %s\n", qty, itemID)
}

func cmdSet(store *cartstate.Store, args []string) {
	itemID, qty := parseItemQty(args, "set")
	if err := store.SetQuantity(itemID, qty); err != nil {
		fatal("set: %v", err)
	}
}

func cmdShow(ctx context.Context, store *cartstate.Store, api *client.Client) {
	lines := store.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}

	// live catalog lookup for lines without a snapshot; fine if the API
	// is unreachable, those lines just price at 0
	byID := map[string]catalog.Item{}
	if items, err := api.ListItems(ctx); err == nil {
		for _, it := range items {
			byID[it.ID] = it
		}
	}
	lookup := func(id string) (catalog.Item, bool) {
		it, ok := byID[id]
		return it, ok
	}

	for _, ln := range lines {
		name := ln.ItemID
		if ln.Item != nil {
			name = ln.Item.Name
		} else if it, ok := byID[ln.ItemID]; ok {
			name = it.Name
		}
		fmt.Printf("%3d x %-30s (%s)\n", ln.Quantity, name, ln.ItemID)
	}
	t := store.Totals(lookup)
	fmt.Printf("total: %d items, %d.%02d\n", t.TotalQuantity, t.TotalPriceCents/100, t.TotalPriceCents%100)
}

func cmdValidate(ctx context.Context, store *cartstate.Store, api *client.Client) {
	lines := store.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}

	req := make([]cart.Line, 0, len(lines))
	for _, ln := range lines {
		req = append(req, cart.Line{ItemID: ln.ItemID, Quantity: ln.Quantity})
	}

	report, err := api.ValidateCart(ctx, req)
	if err != nil {
		fatal("validate: %v", err)
	}
	if report.IsValid {
		fmt.Println("cart is valid")
		return
	}
	for _, msg := range report.Errors {
		fmt.Println(msg)
	}
	os.Exit(1)
}

func parseItemQty(args []string, cmd string) (string, int) {
	if len(args) != 2 {
		fatal("usage: cartctl %s <itemId> <qty>", cmd)
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		fatal("qty must be a number: %v", err)
	}
	return args[0], qty
}

func cartDir() string {
	if d := os.Getenv("CART_DIR"); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cartctl"
	}
	return filepath.Join(home, ".cartctl")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func fatal(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
