// Package partition derives the HmSearch partitioning parameters and
// builds the byte keys identifying partition slots.
//
// A hash of B bits is split into P partitions of b bits each
// (partitions at the end may be narrower; a partition starting at or
// beyond bit B holds no bits). Any two hashes within Hamming
// distance k of each other must, by pigeonhole, agree exactly in at
// least one partition or differ in exactly one bit of at least one
// partition, which is what makes slot probing complete.
package partition

// Store key layout:
//
//	Byte 0:    'P'
//	Byte 1:    partition number as a single byte. P reaches 256 at max
//	           error 510; above that (up to the accepted maximum of
//	           518, P = 260) partition numbers from 256 up wrap to 0-3
//	           and share key space with those partitions, and the
//	           extra hits are dropped by the final distance check
//	Bytes 2-N: partition bits, masked in place, in ceil(b/8)+1 bytes;
//	           the extra byte holds the trailing bits of a partition
//	           that straddles one more byte, and is zero otherwise
const KeyPrefix = 'P'

// Settings record keys. Written once at creation time, never changed.
const (
	KeyHashBits = "_hb"
	KeyMaxError = "_me"
)

// Params carries the immutable partitioning geometry derived from the
// hash width and the maximum error.
type Params struct {
	HashBits  int // B
	MaxError  int // k
	HashBytes int // bytes per stored hash
	Count     int // P, number of partitions
	Bits      int // b, nominal bits per partition
	KeyBytes  int // partition-bits payload bytes, incl. the extra byte
}

// New derives Params from the hash bit-width and maximum error.
// Inputs are assumed validated by the caller.
func New(hashBits, maxError int) Params {
	p := (maxError + 3) / 2
	b := (hashBits + p - 1) / p
	return Params{
		HashBits:  hashBits,
		MaxError:  maxError,
		HashBytes: (hashBits + 7) / 8,
		Count:     p,
		Bits:      b,
		KeyBytes:  (b+7)/8 + 1,
	}
}

// KeyLen returns the total length of a partition key in bytes.
func (p Params) KeyLen() int { return p.KeyBytes + 2 }

// Size returns the number of real bits held by partition i.
func (p Params) Size(i int) int {
	psize := p.HashBits - i*p.Bits
	if psize > p.Bits {
		psize = p.Bits
	}
	if psize < 0 {
		psize = 0
	}
	return psize
}

// Key builds the slot key for partition i of hash and returns it
// together with the partition's real bit count.
//
// The partition bits keep their source positions modulo 8 inside each
// key byte: a partition starting at hash bit 3 begins at bit 3 of its
// first payload byte, with the leading bits masked to zero. Unused
// trailing bits are zero as well, and so is the final payload byte
// unless the partition's bits reach into it.
func (p Params) Key(hash []byte, i int) (key []byte, psize int) {
	psize = p.Size(i)

	key = make([]byte, p.KeyLen())
	key[0] = KeyPrefix
	key[1] = byte(i)

	bitsLeft := psize
	hashBit := i * p.Bits

	for j := 0; j < p.KeyBytes; j++ {
		if bitsLeft == 0 {
			break
		}
		byteIdx := hashBit / 8
		bit := hashBit % 8
		bits := 8 - bit
		if bits > bitsLeft {
			bits = bitsLeft
		}
		bitsLeft -= bits
		hashBit += bits

		key[j+2] = hash[byteIdx] & byte(((1<<bits)-1)<<(8-bit-bits))
	}

	return key, psize
}

// BitMask locates bit j of partition i within a slot key, returning
// the key byte index and the mask to XOR for a one-bit flip.
func (p Params) BitMask(i, j int) (idx int, mask byte) {
	start := i * p.Bits
	bit := start + j
	return bit/8 - start/8 + 2, 1 << (7 - bit%8)
}
