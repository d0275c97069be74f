package veilith

// Container byte layout:
//
//	offset   size    field
//	0        32      DeviceTag   (MAC of bytes 32..)
//	32       1024    SaltTable   (64 x 16)
//	1056     524288  BlockTable  (64 x 8192)
//	total    525344
const (
	saltTableOffset  = DeviceTagSize
	blockTableOffset = DeviceTagSize + SaltTableSize
)

// containerView gives named access to the regions of a serialized
// container. The sub-slices alias the underlying bytes; operations that
// mutate a container work on their own copy.
type containerView struct {
	deviceTag  []byte
	saltTable  []byte
	blockTable []byte
}

// splitContainer validates the container length and returns a view of its
// regions
func splitContainer(container []byte) (*containerView, error) {
	if len(container) != ContainerSize {
		return nil, ErrCorruptedContainer
	}
	return &containerView{
		deviceTag:  container[:DeviceTagSize],
		saltTable:  container[saltTableOffset:blockTableOffset],
		blockTable: container[blockTableOffset:],
	}, nil
}

// body returns the MAC'd region: SaltTable followed by BlockTable
func (v *containerView) body() []byte {
	// saltTable and blockTable are contiguous in the original buffer
	return v.saltTable[:SaltTableSize+BlockTableSize]
}

// salt returns the i-th salt slot
func (v *containerView) salt(i int) []byte {
	return v.saltTable[i*SaltSize : (i+1)*SaltSize]
}

// block returns the j-th block slot
func (v *containerView) block(j int) []byte {
	return v.blockTable[j*BlockSize : (j+1)*BlockSize]
}

// assembleContainer builds a container from its regions
func assembleContainer(deviceTag, saltTable, blockTable []byte) []byte {
	out := make([]byte, 0, ContainerSize)
	out = append(out, deviceTag...)
	out = append(out, saltTable...)
	out = append(out, blockTable...)
	return out
}
