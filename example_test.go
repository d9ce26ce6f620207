package bloomfilter_test

import (
	"fmt"

	"github.com/FastFilter/bloomfilter"
)

// This example demonstrates creating a filter sized for an expected element
// count and target false positive rate, adding items to it, and querying
// membership.
func Example_basicUsage() {
	// Sized for 5000 items, roughly 1 in 100 queries for an item that was
	// never added will still answer true.
	const items = 5000
	const fpRate = 0.01
	filter, err := bloomfilter.New(items, fpRate)
	if err != nil {
		fmt.Println(err)
		return
	}

	// Add items to the filter.
	for i := 0; i < items; i++ {
		filter.AddString(fmt.Sprintf("user_%d", i))
	}

	// Every added item answers true, always.
	if !filter.ContainsString("user_0") {
		fmt.Println("filter does not contain expected item user_0")
		return
	}

	// The derived sizing follows from the two parameters alone.
	fmt.Printf("m=%d k=%d bytes=%d\n", filter.M(), filter.K(),
		filter.SizeBytes())

	// Output:
	// m=47926 k=7 bytes=5992
}
