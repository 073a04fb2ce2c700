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

import "errors"

var (
	// ErrInvalidArgument is returned when an operation is invoked on a nil
	// Map.
	ErrInvalidArgument = errors.New("strmap: invalid argument")

	// ErrNotInitialized is returned when an operation is invoked on a Map
	// that was never initialized or has been closed.
	ErrNotInitialized = errors.New("strmap: map not initialized")

	// ErrKeyExists is returned by Put when the key is already present. Put
	// never overwrites; the stored value is left untouched.
	ErrKeyExists = errors.New("strmap: key already exists")

	// ErrNoSuchKey is returned by Delete when the key is not present.
	ErrNoSuchKey = errors.New("strmap: no such key")

	// ErrNotImplemented is returned by the persistence stubs.
	ErrNotImplemented = errors.New("strmap: not implemented")
)
