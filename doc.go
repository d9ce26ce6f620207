/*
Package bloomfilter provides a classic Bloom filter for set membership tests
with a tunable false positive rate and no false negatives. Items that were
added always match, and items that were never added also match with
probability close to the rate the filter was sized for.

A filter is constructed from two parameters, the expected element count n
and the target false positive rate p. The bit vector length m and the
per-item probe count k follow from the standard sizing formulas, rounding m
up so the filter never allocates fewer bits than the target rate calls for.

Probe positions are derived with an explicit, documented scheme rather than
whatever hash the runtime happens to provide. The item is hashed once with
xxhash, and the 64-bit result is then mixed with one derived seed per probe
through the finalizer of MurmurHash3 before a multiply-shift reduction maps
it onto the bit vector. The scheme is fully determined by the filter's
seed, so runs can be reproduced by constructing with NewWithSeed. None of
it is cryptographic; an adversary that knows the seed can manufacture
collisions, and keyed hashing is out of scope.

# Errors

The errors returned by this package are of type bloomfilter.Error and have
full support for the standard library errors.Is and errors.As functions.
This allows the caller to programmatically determine the specific error by
examining the ErrorKind field of the error. Only construction can fail;
adding and querying cannot.

# Concurrency

Filters carry no internal synchronization. Any number of goroutines may
call Contains concurrently once no Add is in flight. Add must be serialized
externally, and a Contains racing an Add may observe a partially inserted
item and report it absent. Callers that mutate and query concurrently are
expected to bring their own locking.

# Memory

The bit vector is packed into 64-bit words, and SizeBytes reports exactly
that cost, 8*ceil(m/64) bytes. For the textbook example of 5000 items at a
1% target rate this is 5992 bytes, a little under 1.2 bytes per expected
item.
*/
package bloomfilter
