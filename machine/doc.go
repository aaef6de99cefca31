// Package machine implements the elfcode register machine and its assembler.
//
// The machine holds a fixed number of signed 32-bit registers, one of which
// is bound as the instruction pointer (IP). Each step fetches the instruction
// addressed by the IP register, applies it, and then increments the IP
// register. Execution halts once the IP addresses a slot outside the program.
//
// Every instruction has the form `<mnemonic> A B C`. Reads of registers
// outside the register file yield zero, and writes to them are discarded, so
// a loaded program can never fail at run time.
//
// The assembler reads the textual form of a program, an optional `#ip N`
// directive followed by one instruction per line, with support for comments,
// equates and compile-time expressions.
package machine
