package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Нормализация дерева
	NrmInfo                Code = 2000
	NrmUnexpectedToken     Code = 2001
	NrmUnclosedDelimiter   Code = 2002
	NrmLeakedDelimiter     Code = 2003
	NrmMissingOperand      Code = 2004
	NrmBadForHeader        Code = 2005
	NrmUnknownTokenKind    Code = 2006
	NrmMalformedCall       Code = 2007
	NrmMalformedDefinition Code = 2008
	NrmMalformedAccess     Code = 2009
	NrmNestingTooDeep      Code = 2010
	NrmNoChildren          Code = 2011
	NrmMalformedLiteral    Code = 2012

	// Ввод-вывод
	IOLoadFileError     Code = 4001
	IOMalformedInput    Code = 4002
	IOUnsupportedFormat Code = 4003
	IOEmptyDocument     Code = 4004
	IOWriteError        Code = 4005

	// Конфигурация
	CfgInfo         Code = 5000
	CfgInvalidValue Code = 5001
	CfgUnknownKey   Code = 5002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		NrmInfo:                "Normalization information",
		NrmUnexpectedToken:     "Unexpected token",
		NrmUnclosedDelimiter:   "Unmatched delimiter pair",
		NrmLeakedDelimiter:     "Delimiter left over after normalization",
		NrmMissingOperand:      "Construct is missing a required part",
		NrmBadForHeader:        "Malformed for-loop header",
		NrmUnknownTokenKind:    "Unknown token kind",
		NrmMalformedCall:       "Malformed function call",
		NrmMalformedDefinition: "Malformed function definition",
		NrmMalformedAccess:     "Malformed access",
		NrmNestingTooDeep:      "Nesting too deep",
		NrmNoChildren:          "No children received",
		NrmMalformedLiteral:    "Malformed literal",
		IOLoadFileError:        "I/O load file error",
		IOMalformedInput:       "Malformed raw tree document",
		IOUnsupportedFormat:    "Unsupported raw tree format",
		IOEmptyDocument:        "Empty raw tree document",
		IOWriteError:           "I/O write error",
		CfgInfo:                "Configuration information",
		CfgInvalidValue:        "Invalid configuration value",
		CfgUnknownKey:          "Unknown configuration key",
		ObsInfo:                "Observability information",
		ObsTimings:             "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("NRM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
