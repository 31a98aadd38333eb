// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ktrace

// KernelThreads tracks kernel-only thread objects keyed by kernel virtual
// address rather than koid. A kernel address can collide with a user-space
// koid, so these live in their own small linked list instead of sharing the
// Registry's id space. CONTEXT_SWITCH and KTHREAD_NAME records reach this
// table via Trace.kernelThread, and the finalizer walks it to close out
// each kernel thread's track.
type KernelThreads struct {
	list *Object
}

func (k *KernelThreads) find(id uint32) (*Object, bool) {
	for o := k.list; o != nil; o = o.next {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

func (k *KernelThreads) add(o *Object) {
	o.next = k.list
	k.list = o
}
