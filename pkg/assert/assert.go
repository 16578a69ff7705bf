/* Copyright 2025 saasnotes Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package assert provides test assertion helpers
package assert

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Equal fails the test if the two values are not equal
func Equal(t *testing.T, got, want interface{}, message string) {
	t.Helper()

	if got != want {
		t.Errorf("%s: got %+v, want %+v", message, got, want)
	}
}

// NotEqual fails the test if the two values are equal
func NotEqual(t *testing.T, got, notWant interface{}, message string) {
	t.Helper()

	if got == notWant {
		t.Errorf("%s: got %+v, want a different value", message, got)
	}
}

// DeepEqual fails the test if the two values are not deeply equal
func DeepEqual(t *testing.T, got, want interface{}, message string) {
	t.Helper()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%s: mismatch (-want +got):\n%s", message, diff)
	}
}
