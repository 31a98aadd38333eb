// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace_test

import (
	"fmt"
	"log"

	"github.com/swetland/ktrace/ktrace"
)

func Example() {
	tr, err := ktrace.ImportFile("trace.ktrace", nil, 0, false)
	if err != nil {
		log.Fatal(err)
	}

	for _, g := range tr.Groups() {
		for _, t := range g.Tracks {
			for _, e := range t.Event {
				fmt.Printf("event: %+v\n", e)
			}
		}
	}
}
