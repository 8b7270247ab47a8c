// Package csvload parses delimited text files into csv2table records.
//
// The first line is the header row. Every following row maps positionally
// onto the header names. Quoting follows RFC 4180 through encoding/csv.
//
// Input may be UTF-8 (with or without a BOM) or UTF-16 with a BOM.
package csvload
