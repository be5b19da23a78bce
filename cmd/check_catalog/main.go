package main

import (
	"fmt"
	"os"
	"strings"

	"library-desk/library"
)

// check_catalog validates a catalog file before it is handed to the desk with
// --catalog, loading every valid entry into a scratch catalog.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: check_catalog <catalog.json>")
		os.Exit(2)
	}
	path := os.Args[1]

	books, err := library.LoadCatalogFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading catalog: %v\n", err)
		os.Exit(1)
	}

	var last string
	catalog, err := library.NewCatalog(nil, library.NotifierFunc(func(msg string) { last = msg }), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Checking %d book(s) from %s...\n", len(books), path)

	successCount := 0
	errorCount := 0
	for i, b := range books {
		fmt.Printf("Entry %d: %s (%s)... ", i+1, b.Name, b.ISBN)

		if errs := library.ValidateBook(library.BookForm(b)); len(errs) > 0 {
			var reasons []string
			for field, msg := range errs {
				reasons = append(reasons, field+": "+msg)
			}
			fmt.Printf("ERROR - %s\n", strings.Join(reasons, "; "))
			errorCount++
			continue
		}

		catalog.Add(b)
		if last != library.MsgBookAdded {
			fmt.Printf("ERROR - %s\n", last)
			errorCount++
			continue
		}
		fmt.Println("OK")
		successCount++
	}

	fmt.Printf("\nCheck complete!\n")
	fmt.Printf("Valid: %d book(s)\n", successCount)
	fmt.Printf("Errors: %d\n", errorCount)

	if successCount > 0 {
		fmt.Println("\nCatalog:")
		fmt.Printf("%-12s %-30s %-10s %8s %5s\n", "ISBN", "Name", "Category", "Price", "Qty")
		fmt.Println(strings.Repeat("-", 70))
		for _, b := range catalog.List() {
			fmt.Println(library.PrettyBook(b))
		}
	}

	if errorCount > 0 {
		os.Exit(1)
	}
}
