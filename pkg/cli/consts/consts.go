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

// Package consts provides definitions of constants
package consts

var (
	// AppDirName is the name of the directory containing saasnotes files
	AppDirName = "saasnotes"
	// DBFileName is a filename for the saasnotes SQLite database
	DBFileName = "saasnotes.db"
	// TmpContentFileBase is the base for the filename for a temporary content
	TmpContentFileBase = "SAASNOTES_TMPCONTENT"
	// TmpContentFileExt is the extension for the temporary content file
	TmpContentFileExt = "md"
	// ConfigFilename is the name of the config file
	ConfigFilename = "saasnotesrc"

	// SystemSessionToken is the fixed storage key for the bearer token
	SystemSessionToken = "session_token"
	// SystemLastUpdateCheck is the timestamp at which the system most recently
	// checked for a new release
	SystemLastUpdateCheck = "last_update_check"
)
