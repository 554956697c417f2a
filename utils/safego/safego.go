/*
 * Copyright 2025 Olake By Datazip
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

package safego

import (
	"os"
	"runtime/debug"

	"github.com/datazip-inc/tap-mongodb/utils/logger"
)

// Recovery recovers from a panic, logging the value with its stack; meant to
// be deferred at goroutine and process boundaries
func Recovery(exit bool) {
	if r := recover(); r != nil {
		logger.Errorf("panic recovered: %v\n%s", r, string(debug.Stack()))
		if exit {
			os.Exit(1)
		}
	}
}
