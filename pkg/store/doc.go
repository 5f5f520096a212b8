// Package store persists person records in a single delimited text file.
//
// The file starts with the header line "id,name,email,phone" and holds one
// record per line. Fields containing a comma, a double quote or a newline are
// quoted with doubled inner quotes (see package codec). Creates append a line;
// updates, deletes and clears rewrite the whole file through a temporary file
// and a rename, so a crash leaves either the old or the new content.
//
// Reading is lenient. A quote opens a quoted field only at the start of a
// field, a quoted field left open is read as a single line, and the highest id
// is recovered from the leading field of every physical line. Writes refuse a
// record longer than RepositoryConfig.MaxRecordSize, the same bound the reader
// uses when joining the lines of a quoted field.
//
// A Repository serializes its own operations with a mutex. Two Repository
// values bound to the same path, in one process or several, are not
// coordinated: each keeps its own id counter and concurrent rewrites lose
// writes.
package store
