// Package timezone pins every ledger date to one wall clock, configured by APP_TIMEZONE
// (IANA names such as "Asia/Jakarta"; UTC when unset or unknown). Calendar days travel as
// YYYY-MM-DD strings and are parsed to local midnight.
package timezone
