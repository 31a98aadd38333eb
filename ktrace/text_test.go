// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeLineRegularEventIncludesTidAndTimestamp(t *testing.T) {
	rec := &Record{Kind: EvtWaitOne, Tid: 0x42, Body: fourU32Body(1, 2, 3, 4)}
	line := DecodeLine(1_500_000_000, rec)
	require.Contains(t, line, "00000042")
	require.Contains(t, line, "0001.500000000")
	require.Contains(t, line, "0x1")
}

func TestDecodeLineNameRecordOmitsTid(t *testing.T) {
	rec := &Record{Kind: EvtProcName, Tid: 0, Body: nameBody(5, 0, "init")}
	line := DecodeLine(0, rec)
	require.Contains(t, line, `name="init"`)
	require.False(t, strings.Contains(line, "[0000"))
}

func TestDecodeLineContextSwitchDecodesState(t *testing.T) {
	rec := &Record{Kind: EvtContextSwitch, Tid: 1, Body: contextSwitchBody(2, TaskBlocked, 4, 0, 0)}
	line := DecodeLine(0, rec)
	require.Contains(t, line, "state=Blocked")
	require.Contains(t, line, "cpu=4")
}
