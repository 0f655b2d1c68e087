/*
Package icepll computes divider settings for the iCE40 FPGA PLL primitive.

Given a reference input frequency and a requested output frequency, the
solver enumerates the discrete divider space (DIVR, DIVF, DIVQ) for the
selected feedback topology, keeps the valid candidate closest to the
request, and packs the result together with the analog filter range code
and the remaining primitive parameters into a Config ready for
instantiation.

All frequency arithmetic is exact rational arithmetic: the search compares
derived frequencies against hard window limits and must behave identically
at the boundaries, which binary floating point cannot guarantee.

The solver is a pure function over its inputs. It holds no state, performs
no I/O and is safe to call concurrently.
*/
package icepll
