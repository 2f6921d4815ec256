// Package services implements the engine: the structural scanner, the
// boundary-strategy partitioner, the part assembler, the validator and
// the three merge strategies. Services depend only on the domain and
// the driven ports; the CLI reaches them through the driving ports.
package services
