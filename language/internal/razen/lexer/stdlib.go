// Copyright 2026 EngFlow Inc. All rights reserved.
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

package lexer

// StandardLibrary maps every standard library namespace to the functions it exports. Namespace names classify the
// identifier before "::" and function names classify the identifier after it.
var StandardLibrary = map[string][]string{
	"array":        {"push", "pop", "shift", "unshift", "slice", "splice", "concat", "join", "index_of", "last_index_of", "includes", "reverse", "sort", "map", "filter", "reduce", "every", "some", "find", "find_index", "fill", "length"},
	"string":       {"upper", "lower", "capitalize", "substring", "replace", "replace_all", "trim", "trim_start", "trim_end", "starts_with", "ends_with", "includes", "split", "repeat", "pad_start", "pad_end", "char_at", "code_point_at", "from_char_code", "length"},
	"math":         {"add", "subtract", "multiply", "divide", "modulo", "power", "sqrt", "abs", "round", "floor", "ceil", "sin", "cos", "tan", "asin", "acos", "atan", "atan2", "log", "exp", "min", "max", "clamp", "lerp", "random", "random_int", "random_float", "mean", "median", "mode", "variance", "stddev"},
	"datetime":     {"now", "parse", "format", "year", "month", "day", "hour", "minute", "second", "millisecond", "weekday", "weekday_name", "is_leap_year", "days_in_month", "add_days", "add_months", "add_years", "add_hours", "add_minutes", "add_seconds", "diff_days", "diff_months", "diff_years", "to_timestamp", "from_timestamp"},
	"random":       {"seed", "int", "float", "choice", "shuffle", "sample", "random", "weighted_choice", "uuid", "gaussian", "noise"},
	"filesystem":   {"exists", "is_file", "is_dir", "create_file", "create_dir", "remove", "read_file", "write_file", "append_file", "list_dir", "copy_file", "copy_dir", "move_file", "delete_file", "delete_dir", "absolute_path", "relative_path", "extension", "file_stem", "parent_dir", "join_path", "current_dir", "change_dir", "temp_file", "temp_dir", "metadata", "read_json", "write_json"},
	"json":         {"parse", "stringify", "validate", "minify", "pretty_print"},
	"network":      {"get", "post", "put", "delete", "patch", "head", "options", "fetch", "download_file", "upload_file", "ping", "resolve_dns", "get_ip", "url_encode", "url_decode", "build_query", "parse_query", "create_api", "execute_api", "parse_json", "to_json", "is_success", "is_client_error", "is_server_error", "websocket_connect", "websocket_send", "websocket_receive", "websocket_close", "form_data", "multipart_data"},
	"system":       {"getpid", "getcwd", "execute", "getenv", "setenv", "environ", "args", "path_exists", "realpath", "exit", "sleep", "hostname", "username", "uptime", "os_type", "os_release", "cpu_count", "memory_info", "disk_usage", "load_average", "reboot", "shutdown", "suspend"},
	"process":      {"create", "wait", "is_running", "kill", "signal", "list", "info", "read_stdout", "read_stderr", "write_stdin", "priority", "suspend", "resume"},
	"validation":   {"email", "phone", "url", "ip", "required", "min_length", "max_length", "between", "regex", "is_numeric", "is_integer", "is_float", "is_boolean", "is_date", "is_json", "is_uuid"},
	"regex":        {"match", "search", "replace", "split", "findall", "compile", "groups"},
	"crypto":       {"hash", "hmac", "encrypt", "decrypt", "generate_key", "sign", "verify", "random_bytes", "pbkdf2", "base64_encode", "base64_decode", "md5", "sha1", "sha256", "sha512"},
	"uuid":         {"generate", "parse", "validate", "v1", "v4"},
	"color":        {"hex_to_rgb", "rgb_to_hex", "lighten", "darken", "blend", "contrast", "get_ansi_color", "rgba_to_hex", "hex_to_rgba"},
	"image":        {"load", "save", "resize", "crop", "rotate", "flip", "blur", "sharpen", "grayscale", "invert", "draw_text", "draw_shape", "add_watermark"},
	"audio":        {"load", "play", "pause", "stop", "record", "save", "volume", "balance", "duration", "trim", "fade_in", "fade_out"},
	"video":        {"load", "play", "pause", "stop", "record", "save", "trim", "resize", "add_subtitles", "extract_audio", "screenshot"},
	"compression":  {"zip", "unzip", "gzip", "gunzip", "tar", "untar", "compress", "decompress"},
	"archive":      {"create", "extract", "list", "add_file", "remove_file"},
	"logging":      {"info", "warn", "error", "debug", "fatal", "trace", "set_level", "get_level", "add_handler", "remove_handler", "format", "rotate"},
	"config":       {"load", "save", "get", "set", "remove", "list", "validate", "merge", "default"},
	"cache":        {"set", "get", "has", "remove", "clear", "keys", "size", "ttl"},
	"database":     {"connect", "disconnect", "execute", "query", "fetch_one", "fetch_all", "commit", "rollback", "begin_transaction", "migrate", "seed", "close", "escape", "prepare"},
	"http":         {"start", "stop", "route", "listen", "serve_static", "send_response", "set_header", "get_header", "parse_request", "parse_body", "middleware", "redirect", "status"},
	"html":         {"parse", "stringify", "escape", "unescape", "select", "query", "add_class", "remove_class", "set_attr", "get_attr", "inner_html", "outer_html"},
	"template":     {"render", "compile", "include", "escape", "loop", "if", "else", "set", "get", "partial"},
	"csv":          {"parse", "stringify", "read", "write", "validate", "headers", "rows", "columns"},
	"xml":          {"parse", "stringify", "validate", "get_attr", "set_attr", "find", "find_all"},
	"yaml":         {"parse", "stringify", "validate", "merge", "flatten"},
	"ini":          {"parse", "stringify", "get", "set", "remove", "sections"},
	"notification": {"send", "schedule", "cancel", "list", "history"},
	"email":        {"send", "receive", "parse", "validate", "attach", "list", "delete"},
	"sms":          {"send", "receive", "parse", "validate", "history"},
	"websocket":    {"connect", "send", "receive", "close", "broadcast", "on_open", "on_message", "on_close"},
	"event":        {"on", "off", "once", "emit", "listeners", "remove_all"},
	"queue":        {"enqueue", "dequeue", "peek", "is_empty", "size", "clear", "list"},
	"stack":        {"push", "pop", "peek", "is_empty", "size", "clear", "list"},
	"graph":        {"add_node", "remove_node", "add_edge", "remove_edge", "neighbors", "bfs", "dfs", "shortest_path", "has_cycle"},
	"tree":         {"add_node", "remove_node", "find", "traverse", "depth", "height", "is_leaf"},
	"geometry":     {"distance", "midpoint", "area", "perimeter", "volume", "angle", "rotate", "scale", "translate", "intersect", "union", "difference"},
	"seed":         {"generate", "map_seed", "noise_map", "perlin", "simplex", "name", "pattern"},
	"box":          {"put", "get", "has", "remove", "clear", "is_box", "size"},
	"conversion":   {"to_string", "to_int", "to_float", "to_bool", "to_array", "to_object", "to_json", "to_yaml", "to_csv", "to_xml"},
	"headstails":   {"coin", "bool_tos", "flip", "probability"},
	"os":           {"platform", "architecture", "distro", "kernel", "release", "uptime", "hostname", "user", "cpu_info", "memory_info", "disk_info"},
	"bolt":         {"run", "parallel", "threads", "task", "await", "schedule"},
	"animation":    {"start", "stop", "pause", "resume", "set_frame", "get_frame", "timeline", "easing", "loop", "reverse"},
	"physics":      {"apply_force", "apply_torque", "velocity", "acceleration", "mass", "collision", "gravity", "friction", "momentum", "energy"},
	"ai":           {"predict", "train", "evaluate", "load_model", "save_model", "preprocess", "tokenize", "embed", "classify", "cluster", "generate_text"},
}
