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

// Package clock provides an abstract layer over the standard time package
package clock

import "time"

// Clock tells the current time. It is implemented by a real clock and,
// in tests, a mock clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// New returns an instance of a real clock
func New() Clock {
	return systemClock{}
}

// Mock is a clock frozen at a fixed time
type Mock struct {
	T time.Time
}

// Now returns the frozen time
func (m Mock) Now() time.Time {
	return m.T
}
