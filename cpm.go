// Package cpm downloads sample test cases from competitive-programming judges.
// It recovers the ordered (input, output) samples, problem and contest titles,
// and contest problem lists from judge pages whose markup has drifted across
// several layout generations and languages.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package cpm
