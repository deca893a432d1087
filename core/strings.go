package core

import (
	"fmt"
	"maps"

	"github.com/exip-go/exip/utils"
)

const (
	DefaultInitialQNameLists int = 60
)

var (
	EmptyStringValue = NewStringValueFromString(EmptyString)

	// evictedLocalValue is installed into a local value-partition slot once
	// its backing entry has been displaced from the bounded global value
	// ring. It marks the back-pointer invalid rather than leaving it
	// pointing at a string that the global partition no longer owns.
	evictedLocalValue = &StringValue{}
)

type StringCoder interface {
	GetNumberOfStringValues(qnc *QNameContext) int
	Clear()
	SetSharedStrings(sharedStrings []string) error
	IsLocalValuePartitions() bool
}

type StringDecoder interface {
	StringCoder
	AddValue(qnc *QNameContext, value *StringValue) error
	ReadValue(qnc *QNameContext, channel DecoderChannel) (*StringValue, error)
	ReadValueLocalHit(qnc *QNameContext, channel DecoderChannel) (*StringValue, error)
	ReadValueGlobalHit(channel DecoderChannel) (*StringValue, error)
}

type StringEncoder interface {
	StringCoder
	AddValue(qnc *QNameContext, value string) error
	WriteValue(qnc *QNameContext, channel EncoderChannel, value string) error
	IsStringHit(value string) (bool, error)
	GetValueContainer(value string) *ValueContainer
	GetValueContainerSize() int
}

/*
	ValueContainer implementation
*/

type ValueContainer struct {
	Value         string
	Context       *QNameContext
	LocalValueID  int
	GlobalValueID int
}

func NewValueContainer(value string, qnc *QNameContext, localValueID, globalValueID int) ValueContainer {
	return ValueContainer{
		Value:         value,
		Context:       qnc,
		LocalValueID:  localValueID,
		GlobalValueID: globalValueID,
	}
}

/*
	LocalIDMap implementation
*/

type LocalIDMap struct {
	LocalID int
	Context *QNameContext
}

func NewLocalIDMap(localID int, qnc *QNameContext) LocalIDMap {
	return LocalIDMap{
		LocalID: localID,
		Context: qnc,
	}
}

/*
	AbstractStringCoder implementation
*/

type AbstractStringCoder struct {
	StringCoder
	localValuePartitions bool
	localValues          map[QNameContextMapKey][]*StringValue
}

func NewAbstractStringCoder(localValuePartitions bool, initialQNameLists int) *AbstractStringCoder {
	return &AbstractStringCoder{
		localValuePartitions: localValuePartitions,
		localValues:          make(map[QNameContextMapKey][]*StringValue, initialQNameLists),
	}
}

func (c *AbstractStringCoder) GetNumberOfStringValues(qnc *QNameContext) int {
	n := 0
	lvs, exists := c.localValues[qnc.GetMapKey()]
	if exists {
		n = len(lvs)
	}
	return n
}

func (c *AbstractStringCoder) Clear() {
	// local context
	if c.localValuePartitions {
		// free strings only, not destroy lists itself
		for key := range maps.Keys(c.localValues) {
			c.localValues[key] = []*StringValue{}
		}
	}
}

func (c *AbstractStringCoder) IsLocalValuePartitions() bool {
	return c.localValuePartitions
}

// lookupLocalValue resolves the value currently sitting at localID in the
// per-(uri,ln) local value partition. Returns CodeInvalidStringOperation if
// localID points at a slot whose global backing entry has since been
// evicted from the bounded ring (see evictedLocalValue).
func (c *AbstractStringCoder) lookupLocalValue(qnc *QNameContext, localID int) (*StringValue, error) {
	lvs, ok := c.localValues[qnc.GetMapKey()]
	if !ok {
		return nil, NewEXIError(CodeInconsistentProcState, fmt.Sprintf("no local value partition for %+v", qnc.GetMapKey()))
	}
	if localID < 0 || localID >= len(lvs) {
		return nil, NewEXIError(CodeOutOfBoundBuffer, "local value id out of range")
	}
	value := lvs[localID]
	if value == evictedLocalValue {
		return nil, NewEXIError(CodeInvalidStringOperation, "local value id refers to an entry evicted from the global value partition")
	}
	return value, nil
}

func (c *AbstractStringCoder) addLocalValue(qnc *QNameContext, value *StringValue) {
	if c.localValuePartitions {
		lvs, exists := c.localValues[qnc.GetMapKey()]
		if !exists {
			lvs = []*StringValue{}
		}
		lvs = append(lvs, value)
		c.localValues[qnc.GetMapKey()] = lvs
	}
}

/*
	StringDecoderImpl implementation
*/

type StringDecoderImpl struct {
	*AbstractStringCoder
	globalValues []*StringValue
}

func NewStringDecoderImpl(localValuePartitions bool) *StringDecoderImpl {
	return NewStringDecoderImplWithInitialQNameLists(localValuePartitions, DefaultInitialQNameLists)
}

func NewStringDecoderImplWithInitialQNameLists(localValuePartitions bool, initialQNameLists int) *StringDecoderImpl {
	return &StringDecoderImpl{
		AbstractStringCoder: NewAbstractStringCoder(localValuePartitions, initialQNameLists),
		globalValues:        []*StringValue{},
	}
}

func (sd *StringDecoderImpl) AddValue(qnc *QNameContext, value *StringValue) error {
	// global context
	sd.globalValues = append(sd.globalValues, value)
	// local context
	if qnc != nil {
		sd.addLocalValue(qnc, value)
	}
	return nil
}

func (sd *StringDecoderImpl) ReadValue(qnc *QNameContext, channel DecoderChannel) (*StringValue, error) {
	var value *StringValue = nil
	var err error

	i, err := channel.DecodeUnsignedInteger()
	if err != nil {
		return nil, err
	}

	switch i {
	case 0:
		// local value partition
		if sd.localValuePartitions {
			value, err = sd.ReadValueLocalHit(qnc, channel)
			if err != nil {
				return nil, err
			}
		} else {
			return nil, NewEXIError(CodeInvalidEXIInput, "EXI stream contains local-value hit even though profile options indicate otherwise")
		}
	case 1:
		// found in global value partition
		value, err = sd.ReadValueGlobalHit(channel)
		if err != nil {
			return nil, err
		}
	default:
		// not found in global value (and local value) partition
		// ==> string literal is encoded as a String with the length
		// incremented by two.
		len := i - 2

		/*
		 * If length L is greater than zero the string S is added
		 */
		if len > 0 {
			runes, err := channel.DecodeStringOnly(len)
			if err != nil {
				return nil, err
			}
			value = NewStringValueFromSlice(runes)
			// After encoding the string value, it is added to both the
			// associated "local" value string table partition and the
			// global value string table partition.
			if err := sd.AddValue(qnc, value); err != nil {
				return nil, err
			}
		} else {
			value = EmptyStringValue
		}
	}

	if value == nil {
		return nil, NewEXIError(CodeInconsistentProcState, "string table produced a nil value")
	}
	return value, nil
}

func (sd *StringDecoderImpl) ReadValueLocalHit(qnc *QNameContext, channel DecoderChannel) (*StringValue, error) {
	if !sd.localValuePartitions {
		return nil, NewEXIError(CodeInvalidStringOperation, "local value partitions are not used")
	}

	n := utils.GetCodingLength(sd.GetNumberOfStringValues(qnc))
	localID, err := channel.DecodeNBitUnsignedInteger(n)
	if err != nil {
		return nil, err
	}

	return sd.lookupLocalValue(qnc, localID)
}

func (sd *StringDecoderImpl) ReadValueGlobalHit(channel DecoderChannel) (*StringValue, error) {
	numberBitsGlobal := utils.GetCodingLength(len(sd.globalValues))
	globalID, err := channel.DecodeNBitUnsignedInteger(numberBitsGlobal)
	if err != nil {
		return nil, err
	}
	if globalID < 0 || globalID >= len(sd.globalValues) {
		return nil, NewEXIError(CodeOutOfBoundBuffer, "global value id out of range")
	}
	return sd.globalValues[globalID], nil
}

func (sd *StringDecoderImpl) Clear() {
	sd.AbstractStringCoder.Clear()
	sd.globalValues = []*StringValue{}
}

func (sd *StringDecoderImpl) SetSharedStrings(sharedStrings []string) error {
	for _, s := range sharedStrings {
		if err := sd.AddValue(nil, NewStringValueFromString(s)); err != nil {
			return err
		}
	}
	return nil
}

/*
	StringEncoderImpl implementation
*/

type StringEncoderImpl struct {
	*AbstractStringCoder
	stringValues map[string]ValueContainer
}

func NewStringEncoderImpl(localValuePartitions bool) *StringEncoderImpl {
	return NewStringEncoderImplWithInitialQNameLists(localValuePartitions, DefaultInitialQNameLists)
}

func NewStringEncoderImplWithInitialQNameLists(localValuePartitions bool, initialQNameLists int) *StringEncoderImpl {
	return &StringEncoderImpl{
		AbstractStringCoder: NewAbstractStringCoder(localValuePartitions, initialQNameLists),
		stringValues:        map[string]ValueContainer{},
	}
}

func (se *StringEncoderImpl) AddValue(qnc *QNameContext, value string) error {
	if utils.ContainsKey(se.stringValues, value) {
		return NewEXIError(CodeInvalidStringOperation, "attempt to add duplicate global string value")
	}

	// global context
	se.stringValues[value] = NewValueContainer(value, qnc, se.GetNumberOfStringValues(qnc), len(se.stringValues))
	// local context
	se.addLocalValue(qnc, NewStringValueFromString(value))

	return nil
}

func (se *StringEncoderImpl) WriteValue(qnc *QNameContext, channel EncoderChannel, value string) error {
	vc, ok := se.stringValues[value]

	if ok {
		// hit
		if se.localValuePartitions && qnc.Equals(vc.Context) {
			/*
			 * local value hit ==> is represented as zero (0) encoded as an
			 * Unsigned Integer followed by the compact identifier of the
			 * string value in the "local" value partition
			 */
			if err := channel.EncodeUnsignedInteger(0); err != nil {
				return err
			}
			numberBitsLocal := utils.GetCodingLength(se.GetNumberOfStringValues(qnc))
			return channel.EncodeNBitUnsignedInteger(vc.LocalValueID, numberBitsLocal)
		} else {
			/*
			 * global value hit ==> value is represented as one (1) encoded
			 * as an Unsigned Integer followed by the compact identifier of
			 * the String value in the global value partition.
			 */
			if err := channel.EncodeUnsignedInteger(1); err != nil {
				return err
			}
			numberBitsGlobal := utils.GetCodingLength(len(se.stringValues))
			return channel.EncodeNBitUnsignedInteger(vc.GlobalValueID, numberBitsGlobal)
		}
	} else {
		/*
		 * miss [not found in local nor in global value partition] ==>
		 * string literal is encoded as a String with the length incremented
		 * by two.
		 */
		runes := []rune(value)
		len := len(runes)

		if err := channel.EncodeUnsignedInteger(len + 2); err != nil {
			return err
		}
		/*
		 * If length L is greater than zero the string S is added
		 */
		if len > 0 {
			if err := channel.EncodeStringOnly(value); err != nil {
				return err
			}
			// After encoding the string value, it is added to both the
			// associated "local" value string table partition and the
			// global value string table partition.
			if err := se.AddValue(qnc, value); err != nil {
				return err
			}
		}
	}

	return nil
}

func (se *StringEncoderImpl) IsStringHit(value string) (bool, error) {
	return utils.ContainsKey(se.stringValues, value), nil
}

func (se *StringEncoderImpl) GetValueContainer(value string) *ValueContainer {
	vc, ok := se.stringValues[value]
	if ok {
		return &vc
	} else {
		return nil
	}
}

func (se *StringEncoderImpl) GetValueContainerSize() int {
	return len(se.stringValues)
}

func (se *StringEncoderImpl) Clear() {
	se.AbstractStringCoder.Clear()
	se.stringValues = map[string]ValueContainer{}
}

func (se *StringEncoderImpl) SetSharedStrings(sharedStrings []string) error {
	for _, s := range sharedStrings {
		if err := se.AddValue(nil, s); err != nil {
			return err
		}
	}

	return nil
}

/*
	BoundedStringDecoderImpl implementation

	Backs the global value partition with a logical FIFO ring of capacity
	valuePartitionCapacity: a monotonic globalID counter assigns slot
	globalID mod capacity to each new value. Once the ring is full, inserting
	a value displaces whatever previously lived in that slot and invalidates
	its local back-pointer via the evictedLocalValue sentinel, so a later
	local-hit decode against the displaced compact id fails loudly instead of
	resolving to a value the global partition no longer owns.

	A hash index (value -> ring slot) is built only once valuePartitionCapacity
	reaches ValuePartitionHashIndexThreshold: below that, the duplicate check
	AddValue performs is cheap enough as a one-off map miss that a dedicated
	index buys nothing, and the table stays small regardless.
*/

type BoundedStringDecoderImpl struct {
	*StringDecoderImpl
	valueMaxLength         int
	valuePartitionCapacity int
	globalID               int
	filled                 int
	localIDMapping         []LocalIDMap
	hashIndex              map[string]int
}

func NewBoundedStringDecoderImpl(localValuePartitions bool, valueMaxLength, valuePartitionCapacity int) *BoundedStringDecoderImpl {
	lmapSize := 0
	if valuePartitionCapacity > 0 && localValuePartitions {
		lmapSize = valuePartitionCapacity
	}

	var hashIndex map[string]int
	if valuePartitionCapacity >= ValuePartitionHashIndexThreshold {
		hashIndex = make(map[string]int, valuePartitionCapacity)
	}

	return &BoundedStringDecoderImpl{
		StringDecoderImpl:      NewStringDecoderImpl(localValuePartitions),
		valueMaxLength:         valueMaxLength,
		valuePartitionCapacity: valuePartitionCapacity,
		globalID:               -1,
		localIDMapping:         make([]LocalIDMap, lmapSize),
		hashIndex:              hashIndex,
	}
}

// nextRingSlot advances globalID by one position around the ring (wrapping
// at valuePartitionCapacity) and reports whether the slot it lands on
// already held a live entry that insertion is about to displace.
func (sd *BoundedStringDecoderImpl) nextRingSlot() (slot int, displacing bool) {
	sd.globalID++
	if sd.globalID == sd.valuePartitionCapacity {
		sd.globalID = 0
	}
	displacing = sd.filled == sd.valuePartitionCapacity
	if sd.filled < sd.valuePartitionCapacity {
		sd.filled++
	}
	return sd.globalID, displacing
}

func (sd *BoundedStringDecoderImpl) isKnownGlobalValue(value string) bool {
	if sd.hashIndex != nil {
		_, ok := sd.hashIndex[value]
		return ok
	}
	for _, v := range sd.globalValues {
		if v != nil {
			if s, err := v.ToString(); err == nil && s == value {
				return true
			}
		}
	}
	return false
}

func (sd *BoundedStringDecoderImpl) AddValue(qnc *QNameContext, value *StringValue) error {
	clen, err := value.GetCharactersLength()
	if err != nil {
		return err
	}

	// first: check "valueMaxLength"
	if sd.valueMaxLength >= 0 && clen > sd.valueMaxLength {
		return nil
	}

	// next: check "valuePartitionCapacity"
	if sd.valuePartitionCapacity < 0 {
		// no "valuePartitionCapacity" restriction
		return sd.StringDecoderImpl.AddValue(qnc, value)
	}
	if sd.valuePartitionCapacity == 0 {
		// no values per partition
		return nil
	}

	valueS, err := value.ToString()
	if err != nil {
		return err
	}
	if sd.isKnownGlobalValue(valueS) {
		return NewEXIError(CodeInvalidStringOperation, "duplicate global string value")
	}

	/*
	 * When the string value is added to the global value partition, the
	 * value of globalID is incremented by one (1). If the resulting value
	 * of globalID is equal to valuePartitionCapacity, its value is reset
	 * to zero (0). When S is added and there was already a string V
	 * occupying that slot, S replaces V in the global table, and V is
	 * removed from its associated local value partition by invalidating
	 * its compact identifier.
	 */
	slot, displacing := sd.nextRingSlot()

	if displacing {
		evicted := sd.localIDMapping[slot]
		if sd.localValuePartitions && evicted.Context != nil {
			if lvs, ok := sd.localValues[evicted.Context.GetMapKey()]; ok && evicted.LocalID >= 0 && evicted.LocalID < len(lvs) {
				lvs[evicted.LocalID] = evictedLocalValue
			}
		}
		if sd.hashIndex != nil && slot < len(sd.globalValues) && sd.globalValues[slot] != nil {
			if oldS, err := sd.globalValues[slot].ToString(); err == nil {
				delete(sd.hashIndex, oldS)
			}
		}
	}

	if slot < len(sd.globalValues) {
		sd.globalValues[slot] = value
	} else {
		sd.globalValues = append(sd.globalValues, value)
	}

	if sd.hashIndex != nil {
		sd.hashIndex[valueS] = slot
	}

	if sd.localValuePartitions {
		// update local ID mapping
		sd.localIDMapping[slot] = NewLocalIDMap(sd.GetNumberOfStringValues(qnc), qnc)
		// local value
		sd.addLocalValue(qnc, value)
	}

	return nil
}

func (sd *BoundedStringDecoderImpl) Clear() {
	sd.StringDecoderImpl.Clear()
	sd.globalID = -1
	sd.filled = 0
	if sd.hashIndex != nil {
		sd.hashIndex = make(map[string]int, sd.valuePartitionCapacity)
	}
}

/*
	BoundedStringEncoderImpl implementation

	Mirrors BoundedStringDecoderImpl's ring on the encode side: stringValues
	(inherited from StringEncoderImpl) already doubles as the hash index
	from value to its ValueContainer, since encoding must answer "have we
	seen this string" in O(1) regardless of valuePartitionCapacity -- so,
	unlike the decoder, there is no separate threshold-gated index here.
	globalIDMapping is the ring's slot -> ValueContainer direction, used on
	eviction to find which local partition entry a displaced global value
	was backing.
*/

type BoundedStringEncoderImpl struct {
	*StringEncoderImpl
	valueMaxLength         int
	valuePartitionCapacity int
	globalID               int
	globalIDMapping        []ValueContainer
}

func NewBoundedStringEncoderImpl(localValuePartitions bool, valueMaxLength, valuePartitionCapacity int) *BoundedStringEncoderImpl {
	return &BoundedStringEncoderImpl{
		StringEncoderImpl:      NewStringEncoderImpl(localValuePartitions),
		valueMaxLength:         valueMaxLength,
		valuePartitionCapacity: valuePartitionCapacity,
		globalID:               -1,
		globalIDMapping:        make([]ValueContainer, utils.Max(0, valuePartitionCapacity)),
	}
}

// nextRingSlot mirrors BoundedStringDecoderImpl.nextRingSlot: len(stringValues)
// reaching valuePartitionCapacity is equivalent to the decoder's filled
// counter, since stringValues only ever holds currently-live entries.
func (se *BoundedStringEncoderImpl) nextRingSlot() (slot int, displacing bool) {
	se.globalID++
	if se.globalID == se.valuePartitionCapacity {
		se.globalID = 0
	}
	displacing = len(se.stringValues) == se.valuePartitionCapacity
	return se.globalID, displacing
}

func (se *BoundedStringEncoderImpl) AddValue(qnc *QNameContext, value string) error {
	// first: check "valueMaxLength"
	if se.valueMaxLength >= 0 && len(value) > se.valueMaxLength {
		return nil
	}

	// next: check "valuePartitionCapacity"
	if se.valuePartitionCapacity < 0 {
		// no "valuePartitionCapacity" restriction
		return se.StringEncoderImpl.AddValue(qnc, value)
	}
	if se.valuePartitionCapacity == 0 {
		// no values per partition
		return nil
	}

	/*
	 * When S is added to the global value partition and there was already
	 * a string V in the global value partition associated with the compact
	 * identifier globalID, the string S replaces the string V in the
	 * global table, and the string V is removed from its associated local
	 * value partition by rendering its compact identifier permanently
	 * unassigned.
	 */
	if utils.ContainsKey(se.stringValues, value) {
		return NewEXIError(CodeInvalidStringOperation, "duplicate global string value")
	}

	slot, displacing := se.nextRingSlot()
	vc := NewValueContainer(value, qnc, se.GetNumberOfStringValues(qnc), slot)

	if displacing {
		evicted := se.globalIDMapping[slot]
		if err := se.evictLocalValue(evicted.Context, evicted.LocalValueID); err != nil {
			return err
		}
		delete(se.stringValues, evicted.Value)
	}

	se.stringValues[value] = vc
	se.addLocalValue(qnc, NewStringValueFromString(value))
	se.globalIDMapping[slot] = vc

	return nil
}

// evictLocalValue installs the evictedLocalValue sentinel into the local
// partition slot a displaced ring entry was backing, invalidating its
// back-pointer instead of leaving it aimed at a string the global
// partition no longer owns.
func (se *BoundedStringEncoderImpl) evictLocalValue(qnc *QNameContext, localValueID int) error {
	if !se.localValuePartitions || qnc == nil {
		return nil
	}
	lvs, ok := se.localValues[qnc.GetMapKey()]
	if !ok {
		return NewEXIError(CodeInconsistentProcState, fmt.Sprintf("local value missing for %+v", qnc.GetMapKey()))
	}
	if localValueID < 0 || localValueID >= len(lvs) {
		return NewEXIError(CodeOutOfBoundBuffer, "local value id out of range during eviction")
	}
	lvs[localValueID] = evictedLocalValue
	return nil
}

func (se *BoundedStringEncoderImpl) Clear() {
	se.StringEncoderImpl.Clear()
	se.globalID = -1
}
