// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package notify

import "strconv"

// Every level of the EventKind hierarchy carries an Any variant, used when
// nothing more is known, and an Other variant, used when more is known but
// cannot be encoded by the specific variants. All kinds are comparable values,
// so they can be tested with == and used as map keys.

func otherString(s string) string {
	return "Other(" + strconv.Quote(s) + ")"
}

// AccessMode describes the mode of an open or close operation.
type AccessMode struct {
	tag   uint8
	other string
}

const (
	modeAny uint8 = iota
	modeExecute
	modeRead
	modeWrite
	modeOther
)

// Access modes.
var (
	ModeAny     = AccessMode{tag: modeAny}
	ModeExecute = AccessMode{tag: modeExecute}
	ModeRead    = AccessMode{tag: modeRead}
	ModeWrite   = AccessMode{tag: modeWrite}
)

// ModeOther gives an access mode which is known but cannot be represented
// otherwise.
func ModeOther(s string) AccessMode { return AccessMode{tag: modeOther, other: s} }

// Other returns the description of a ModeOther value.
func (m AccessMode) Other() (string, bool) { return m.other, m.tag == modeOther }

// String implements fmt.Stringer interface.
func (m AccessMode) String() string {
	switch m.tag {
	case modeExecute:
		return "Execute"
	case modeRead:
		return "Read"
	case modeWrite:
		return "Write"
	case modeOther:
		return otherString(m.other)
	default:
		return "Any"
	}
}

// AccessKind describes non-mutating access operations on files.
type AccessKind struct {
	tag   uint8
	mode  AccessMode
	other string
}

const (
	accessAny uint8 = iota
	accessRead
	accessOpen
	accessClose
	accessOther
)

// Access kinds without details.
var (
	AccessAny  = AccessKind{tag: accessAny}
	AccessRead = AccessKind{tag: accessRead}
)

// AccessOpen is emitted when the file, or a handle to the file, is opened.
func AccessOpen(m AccessMode) AccessKind { return AccessKind{tag: accessOpen, mode: m} }

// AccessClose is emitted when the file, or a handle to the file, is closed.
func AccessClose(m AccessMode) AccessKind { return AccessKind{tag: accessClose, mode: m} }

// AccessOther gives an access kind which cannot be represented otherwise.
func AccessOther(s string) AccessKind { return AccessKind{tag: accessOther, other: s} }

// IsOpen reports whether k was built with AccessOpen.
func (k AccessKind) IsOpen() bool { return k.tag == accessOpen }

// IsClose reports whether k was built with AccessClose.
func (k AccessKind) IsClose() bool { return k.tag == accessClose }

// Mode returns the access mode of an open or close kind.
func (k AccessKind) Mode() (AccessMode, bool) {
	return k.mode, k.tag == accessOpen || k.tag == accessClose
}

// Other returns the description of an AccessOther value.
func (k AccessKind) Other() (string, bool) { return k.other, k.tag == accessOther }

// String implements fmt.Stringer interface.
func (k AccessKind) String() string {
	switch k.tag {
	case accessRead:
		return "Read"
	case accessOpen:
		return "Open(" + k.mode.String() + ")"
	case accessClose:
		return "Close(" + k.mode.String() + ")"
	case accessOther:
		return otherString(k.other)
	default:
		return "Any"
	}
}

// CreateKind describes creation operations on files.
type CreateKind struct {
	tag   uint8
	other string
}

const (
	createAny uint8 = iota
	createFile
	createFolder
	createOther
)

// Create kinds without details.
var (
	CreateAny    = CreateKind{tag: createAny}
	CreateFile   = CreateKind{tag: createFile}
	CreateFolder = CreateKind{tag: createFolder}
)

// CreateOther gives a create kind which cannot be represented otherwise, e.g.
// CreateOther("mount").
func CreateOther(s string) CreateKind { return CreateKind{tag: createOther, other: s} }

// Other returns the description of a CreateOther value.
func (k CreateKind) Other() (string, bool) { return k.other, k.tag == createOther }

// String implements fmt.Stringer interface.
func (k CreateKind) String() string {
	switch k.tag {
	case createFile:
		return "File"
	case createFolder:
		return "Folder"
	case createOther:
		return otherString(k.other)
	default:
		return "Any"
	}
}

// DataChange describes a change of the data content of a file.
type DataChange struct {
	tag   uint8
	other string
}

const (
	dataAny uint8 = iota
	dataSize
	dataContent
	dataOther
)

// Data changes without details.
var (
	DataAny     = DataChange{tag: dataAny}
	DataSize    = DataChange{tag: dataSize}
	DataContent = DataChange{tag: dataContent}
)

// DataOther gives a data change which cannot be represented otherwise.
func DataOther(s string) DataChange { return DataChange{tag: dataOther, other: s} }

// Other returns the description of a DataOther value.
func (d DataChange) Other() (string, bool) { return d.other, d.tag == dataOther }

// String implements fmt.Stringer interface.
func (d DataChange) String() string {
	switch d.tag {
	case dataSize:
		return "Size"
	case dataContent:
		return "Content"
	case dataOther:
		return otherString(d.other)
	default:
		return "Any"
	}
}

// MetadataKind describes a change of the metadata of a file or folder.
type MetadataKind struct {
	tag   uint8
	other string // extended attribute name or Other description
}

const (
	metadataAny uint8 = iota
	metadataAccessTime
	metadataWriteTime
	metadataPermissions
	metadataOwnership
	metadataExtended
	metadataOther
)

// Metadata kinds without details.
var (
	MetadataAny         = MetadataKind{tag: metadataAny}
	MetadataAccessTime  = MetadataKind{tag: metadataAccessTime}
	MetadataWriteTime   = MetadataKind{tag: metadataWriteTime}
	MetadataPermissions = MetadataKind{tag: metadataPermissions}
	MetadataOwnership   = MetadataKind{tag: metadataOwnership}
)

// MetadataExtended is emitted when the named extended attribute changes.
func MetadataExtended(name string) MetadataKind {
	return MetadataKind{tag: metadataExtended, other: name}
}

// MetadataOther gives a metadata kind which cannot be represented otherwise.
func MetadataOther(s string) MetadataKind { return MetadataKind{tag: metadataOther, other: s} }

// Extended returns the attribute name of a MetadataExtended value.
func (k MetadataKind) Extended() (string, bool) { return k.other, k.tag == metadataExtended }

// Other returns the description of a MetadataOther value.
func (k MetadataKind) Other() (string, bool) { return k.other, k.tag == metadataOther }

// String implements fmt.Stringer interface.
func (k MetadataKind) String() string {
	switch k.tag {
	case metadataAccessTime:
		return "AccessTime"
	case metadataWriteTime:
		return "WriteTime"
	case metadataPermissions:
		return "Permissions"
	case metadataOwnership:
		return "Ownership"
	case metadataExtended:
		return "Extended(" + strconv.Quote(k.other) + ")"
	case metadataOther:
		return otherString(k.other)
	default:
		return "Any"
	}
}

// RenameMode describes which side of a rename an event is about.
type RenameMode struct {
	tag   uint8
	other string
}

const (
	renameAny uint8 = iota
	renameTo
	renameFrom
	renameOther
)

// Rename modes. RenameFrom is emitted on the path that was renamed, RenameTo
// on the path resulting from the rename.
var (
	RenameAny  = RenameMode{tag: renameAny}
	RenameTo   = RenameMode{tag: renameTo}
	RenameFrom = RenameMode{tag: renameFrom}
)

// RenameOther gives a rename mode which cannot be represented otherwise.
func RenameOther(s string) RenameMode { return RenameMode{tag: renameOther, other: s} }

// Other returns the description of a RenameOther value.
func (m RenameMode) Other() (string, bool) { return m.other, m.tag == renameOther }

// String implements fmt.Stringer interface.
func (m RenameMode) String() string {
	switch m.tag {
	case renameTo:
		return "To"
	case renameFrom:
		return "From"
	case renameOther:
		return otherString(m.other)
	default:
		return "Any"
	}
}

// ModifyKind describes mutation of content, name or metadata.
type ModifyKind struct {
	tag      uint8
	data     DataChange
	metadata MetadataKind
	name     RenameMode
	other    string
}

const (
	modifyAny uint8 = iota
	modifyData
	modifyMetadata
	modifyName
	modifyOther
)

// ModifyAny is a modification with no further details.
var ModifyAny = ModifyKind{tag: modifyAny}

// ModifyData is emitted when the data content of a file changes.
func ModifyData(d DataChange) ModifyKind { return ModifyKind{tag: modifyData, data: d} }

// ModifyMetadata is emitted when the metadata of a file or folder changes.
func ModifyMetadata(m MetadataKind) ModifyKind {
	return ModifyKind{tag: modifyMetadata, metadata: m}
}

// ModifyName is emitted when the name of a file or folder changes.
func ModifyName(r RenameMode) ModifyKind { return ModifyKind{tag: modifyName, name: r} }

// ModifyOther gives a modify kind which cannot be represented otherwise.
func ModifyOther(s string) ModifyKind { return ModifyKind{tag: modifyOther, other: s} }

// Data returns the detail of a ModifyData value.
func (k ModifyKind) Data() (DataChange, bool) { return k.data, k.tag == modifyData }

// Metadata returns the detail of a ModifyMetadata value.
func (k ModifyKind) Metadata() (MetadataKind, bool) { return k.metadata, k.tag == modifyMetadata }

// Name returns the detail of a ModifyName value.
func (k ModifyKind) Name() (RenameMode, bool) { return k.name, k.tag == modifyName }

// Other returns the description of a ModifyOther value.
func (k ModifyKind) Other() (string, bool) { return k.other, k.tag == modifyOther }

// String implements fmt.Stringer interface.
func (k ModifyKind) String() string {
	switch k.tag {
	case modifyData:
		return "Data(" + k.data.String() + ")"
	case modifyMetadata:
		return "Metadata(" + k.metadata.String() + ")"
	case modifyName:
		return "Name(" + k.name.String() + ")"
	case modifyOther:
		return otherString(k.other)
	default:
		return "Any"
	}
}

// RemoveKind describes removal operations on files.
type RemoveKind struct {
	tag   uint8
	other string
}

const (
	removeAny uint8 = iota
	removeFile
	removeFolder
	removeOther
)

// Remove kinds without details.
var (
	RemoveAny    = RemoveKind{tag: removeAny}
	RemoveFile   = RemoveKind{tag: removeFile}
	RemoveFolder = RemoveKind{tag: removeFolder}
)

// RemoveOther gives a remove kind which cannot be represented otherwise, e.g.
// RemoveOther("unmount").
func RemoveOther(s string) RemoveKind { return RemoveKind{tag: removeOther, other: s} }

// Other returns the description of a RemoveOther value.
func (k RemoveKind) Other() (string, bool) { return k.other, k.tag == removeOther }

// String implements fmt.Stringer interface.
func (k RemoveKind) String() string {
	switch k.tag {
	case removeFile:
		return "File"
	case removeFolder:
		return "Folder"
	case removeOther:
		return otherString(k.other)
	default:
		return "Any"
	}
}

// Class is the top-level classification of an EventKind. Most consumers only
// care about which of the four general classes an event belongs to.
type Class uint8

// Top-level classes.
const (
	ClassAny Class = iota
	ClassAccess
	ClassCreate
	ClassModify
	ClassRemove
	ClassOther
)

var classNames = [...]string{
	ClassAny:    "Any",
	ClassAccess: "Access",
	ClassCreate: "Create",
	ClassModify: "Modify",
	ClassRemove: "Remove",
	ClassOther:  "Other",
}

// String implements fmt.Stringer interface.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "Class(" + strconv.Itoa(int(c)) + ")"
}

// EventKind describes an event as precisely as a backend can tell.
//
// The zero value is Any, which backends use as the "else" case when mapping
// native bitmasks, so that new native event types do not turn into bugs.
type EventKind struct {
	class  Class
	access AccessKind
	create CreateKind
	modify ModifyKind
	remove RemoveKind
	other  string
}

// Any is the catch-all event kind for unsupported or unknown events.
var Any = EventKind{}

// Access describes non-mutating access to files: opening, closing, executing.
// Only backends with the EmitOnAccess capability generate these.
func Access(k AccessKind) EventKind { return EventKind{class: ClassAccess, access: k} }

// Create describes creation of files, folders or other structures, but not
// writing new content into them.
func Create(k CreateKind) EventKind { return EventKind{class: ClassCreate, create: k} }

// Modify describes mutation of content, name (path) or metadata.
func Modify(k ModifyKind) EventKind { return EventKind{class: ClassModify, modify: k} }

// Remove describes removal of files, folders or other structures. It may also
// be emitted for moves out of the watched path.
func Remove(k RemoveKind) EventKind { return EventKind{class: ClassRemove, remove: k} }

// Other describes an event fitting none of the four classes, e.g. meta-events
// about the watch itself. It generally should not be used.
func Other(s string) EventKind { return EventKind{class: ClassOther, other: s} }

// Class returns the top-level class of k.
func (k EventKind) Class() Class { return k.class }

// IsAny reports whether k is the catch-all kind.
func (k EventKind) IsAny() bool { return k.class == ClassAny }

// IsAccess reports whether k is an Access variant.
func (k EventKind) IsAccess() bool { return k.class == ClassAccess }

// IsCreate reports whether k is a Create variant.
func (k EventKind) IsCreate() bool { return k.class == ClassCreate }

// IsModify reports whether k is a Modify variant.
func (k EventKind) IsModify() bool { return k.class == ClassModify }

// IsRemove reports whether k is a Remove variant.
func (k EventKind) IsRemove() bool { return k.class == ClassRemove }

// IsOther reports whether k is an Other variant.
func (k EventKind) IsOther() bool { return k.class == ClassOther }

// Access returns the detail of an Access kind.
func (k EventKind) Access() (AccessKind, bool) { return k.access, k.class == ClassAccess }

// Create returns the detail of a Create kind.
func (k EventKind) Create() (CreateKind, bool) { return k.create, k.class == ClassCreate }

// Modify returns the detail of a Modify kind.
func (k EventKind) Modify() (ModifyKind, bool) { return k.modify, k.class == ClassModify }

// Remove returns the detail of a Remove kind.
func (k EventKind) Remove() (RemoveKind, bool) { return k.remove, k.class == ClassRemove }

// Other returns the description of an Other kind.
func (k EventKind) Other() (string, bool) { return k.other, k.class == ClassOther }

// String implements fmt.Stringer interface.
func (k EventKind) String() string {
	switch k.class {
	case ClassAccess:
		return "Access(" + k.access.String() + ")"
	case ClassCreate:
		return "Create(" + k.create.String() + ")"
	case ClassModify:
		return "Modify(" + k.modify.String() + ")"
	case ClassRemove:
		return "Remove(" + k.remove.String() + ")"
	case ClassOther:
		return otherString(k.other)
	default:
		return "Any"
	}
}

// MarshalText implements encoding.TextMarshaler interface.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
