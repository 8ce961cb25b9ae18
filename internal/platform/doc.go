package platform

// Package platform contains filesystem glue shared by the executor, the
// retrieval gate and the janitor: directory setup, artifact lookup, and
// title sanitization for download-facing filenames.
