// Copyright 2025 The strmap Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package strmap

import "io"

// Serialize writes the map to w.
//
// Not implemented: it unconditionally returns ErrNotImplemented. An on-disk
// layout would need to record the capacity and the live entry set together
// with the stored hashes; defining that format is deferred.
func (m *Map) Serialize(w io.Writer) error {
	return ErrNotImplemented
}

// Deserialize reads a map previously written by Serialize from r.
//
// Not implemented: it unconditionally returns ErrNotImplemented.
func (m *Map) Deserialize(r io.Reader) error {
	return ErrNotImplemented
}
