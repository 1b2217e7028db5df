// Package probe implements existence probes for content files.
//
// LocalProber checks a directory through afero, so tests can run against an
// in-memory filesystem. ObjectProber checks a bucket prefix with StatObject.
//
// Both are fail-safe: any error, including permission or transport failures,
// reports the file as missing, so a problem is flagged rather than skipped.
// Such errors are logged at warn level to tell them apart from plain misses.
//
// New refuses to build a prober when the content root directory or the bucket
// is unreachable, so a misconfiguration never makes every file look missing.
package probe
