package transform

import (
	"testing"

	"rftidy/internal/parser"
)

// runPass loads one pass by name, runs it on src and renders the result.
func runPass(t *testing.T, name string, params []string, cfg Config, src string) string {
	t.Helper()
	invs, err := Load(DefaultCatalog(), []Selection{{Name: name, Params: params}}, nil, nil, LoadOptions{})
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	doc, err := parser.Parse("test.robot", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p := NewPipeline(invs, cfg)
	if err := p.Run(doc); err != nil {
		t.Fatalf("run %s: %v", name, err)
	}
	return string(doc.Render(p.Config.SpaceCount))
}

func assertFormat(t *testing.T, name string, params []string, src, want string) {
	t.Helper()
	if got := runPass(t, name, params, Config{}, src); got != want {
		t.Fatalf("%s output mismatch:\nwant %q\ngot  %q", name, want, got)
	}
}

func TestNormalizeSeparators(t *testing.T) {
	assertFormat(t, "NormalizeSeparators", nil,
		"*** Settings ***\nLibrary   Collections\n*** Test Cases ***\nTest\n\t\tLog\tmessage\n",
		"*** Settings ***\nLibrary    Collections\n*** Test Cases ***\nTest\n    Log    message\n")
}

func TestNormalizeSeparatorsSpaceCount(t *testing.T) {
	got := runPass(t, "NormalizeSeparators", nil, Config{SpaceCount: 2},
		"*** Test Cases ***\nTest\n    Log    message\n")
	want := "*** Test Cases ***\nTest\n  Log  message\n"
	if got != want {
		t.Fatalf("spacecount ignored:\nwant %q\ngot  %q", want, got)
	}
}

func TestNormalizeSeparatorsHonorsLineRange(t *testing.T) {
	got := runPass(t, "NormalizeSeparators", nil, Config{StartLine: 3, EndLine: 3},
		"*** Settings ***\nLibrary   A\nResource   B\n")
	want := "*** Settings ***\nLibrary   A\nResource    B\n"
	if got != want {
		t.Fatalf("out-of-range lines touched:\nwant %q\ngot  %q", want, got)
	}
}

func TestNormalizeSeparatorsBlockIndentation(t *testing.T) {
	assertFormat(t, "NormalizeSeparators", nil,
		"*** Test Cases ***\nTest\n    IF    ${cond}\n    Log    x\n    ELSE\n    Log    y\n    END\n    FOR    ${i}    IN    1    2\n    Log    ${i}\n    END\n",
		"*** Test Cases ***\nTest\n    IF    ${cond}\n        Log    x\n    ELSE\n        Log    y\n    END\n    FOR    ${i}    IN    1    2\n        Log    ${i}\n    END\n")
}

func TestDiscardEmptySections(t *testing.T) {
	assertFormat(t, "DiscardEmptySections", nil,
		"*** Variables ***\n\n*** Settings ***\nLibrary    Collections\n",
		"*** Settings ***\nLibrary    Collections\n")
}

func TestDiscardEmptySectionsKeepsCommentsByDefault(t *testing.T) {
	src := "*** Variables ***\n# note\n*** Settings ***\nLibrary    X\n"
	assertFormat(t, "DiscardEmptySections", nil, src, src)
	assertFormat(t, "DiscardEmptySections", []string{"allow_only_comments=false"}, src,
		"*** Settings ***\nLibrary    X\n")
}

func TestOrderSectionsMergesAndOrders(t *testing.T) {
	assertFormat(t, "OrderSections", nil,
		"*** Keywords ***\nKw\n    Log    x\n*** Settings ***\nLibrary    A\n*** Keywords ***\nOther\n    Log    y\n",
		"*** Settings ***\nLibrary    A\n*** Keywords ***\nKw\n    Log    x\nOther\n    Log    y\n")
}

func TestOrderSectionsSkippedForLineRange(t *testing.T) {
	src := "*** Keywords ***\nKw\n    Log    x\n*** Settings ***\nLibrary    A\n"
	got := runPass(t, "OrderSections", nil, Config{StartLine: 1, EndLine: 100}, src)
	if got != src {
		t.Fatalf("reorder ran despite line range:\n%q", got)
	}
}

func TestOrderSectionsRejectsUnknownName(t *testing.T) {
	_, err := Load(DefaultCatalog(), []Selection{
		{Name: "OrderSections", Params: []string{"order=settings,nonsense"}},
	}, nil, nil, LoadOptions{})
	if err == nil {
		t.Fatalf("unknown section name accepted")
	}
}

func TestRemoveEmptySettings(t *testing.T) {
	assertFormat(t, "RemoveEmptySettings", nil,
		"*** Settings ***\nLibrary    Collections\nForce Tags\n*** Test Cases ***\nTest\n    [Tags]\n    Log    x\n",
		"*** Settings ***\nLibrary    Collections\n*** Test Cases ***\nTest\n    Log    x\n")
}

func TestNormalizeAssignmentsRemove(t *testing.T) {
	assertFormat(t, "NormalizeAssignments", nil,
		"*** Variables ***\n${var} =    value\n${plain}    1\n",
		"*** Variables ***\n${var}    value\n${plain}    1\n")
}

func TestNormalizeAssignmentsEqualSign(t *testing.T) {
	assertFormat(t, "NormalizeAssignments", []string{"equal_sign_type=equal_sign"},
		"*** Variables ***\n${x}    1\n",
		"*** Variables ***\n${x}=    1\n")
}

func TestNormalizeAssignmentsStepKeepsLastSignOnly(t *testing.T) {
	assertFormat(t, "NormalizeAssignments", []string{"equal_sign_type=equal_sign"},
		"*** Test Cases ***\nTest\n    ${a} =    ${b}    Keyword    arg\n",
		"*** Test Cases ***\nTest\n    ${a}    ${b}=    Keyword    arg\n")
}

func TestOrderSettings(t *testing.T) {
	assertFormat(t, "OrderSettings", nil,
		"*** Test Cases ***\nTest\n    [Teardown]    Close\n    Log    x\n    [Documentation]    doc\n",
		"*** Test Cases ***\nTest\n    [Documentation]    doc\n    Log    x\n    [Teardown]    Close\n")
}

func TestOrderSettingsSection(t *testing.T) {
	assertFormat(t, "OrderSettingsSection", nil,
		"*** Settings ***\nLibrary    Collections\nDocumentation    My suite\nSuite Setup    Prepare\n",
		"*** Settings ***\nDocumentation    My suite\nLibrary    Collections\nSuite Setup    Prepare\n")
}

func TestOrderSettingsSectionCommentSticksToSetting(t *testing.T) {
	assertFormat(t, "OrderSettingsSection", nil,
		"*** Settings ***\n# collections helpers\nLibrary    Collections\nDocumentation    My suite\n",
		"*** Settings ***\nDocumentation    My suite\n# collections helpers\nLibrary    Collections\n")
}

func TestAlignSettingsSection(t *testing.T) {
	assertFormat(t, "AlignSettingsSection", nil,
		"*** Settings ***\nLibrary    A\nResource    file.resource\n",
		"*** Settings ***\nLibrary     A\nResource    file.resource\n")
}

func TestAlignVariablesSection(t *testing.T) {
	assertFormat(t, "AlignVariablesSection", nil,
		"*** Variables ***\n${a}    1\n${longer}    2\n",
		"*** Variables ***\n${a}         1\n${longer}    2\n")
}

func TestNormalizeNewLines(t *testing.T) {
	assertFormat(t, "NormalizeNewLines", nil,
		"*** Settings ***\nLibrary    X\n\n\n\n*** Test Cases ***\nTest\n    Log    x\n\n\n",
		"*** Settings ***\nLibrary    X\n\n*** Test Cases ***\nTest\n    Log    x\n")
}

func TestNormalizeSectionHeaderName(t *testing.T) {
	assertFormat(t, "NormalizeSectionHeaderName", nil,
		"*** settings ***\n*** KEYWORDS ***\n*** Whatever ***\n",
		"*** Settings ***\n*** Keywords ***\n*** Whatever ***\n")
	assertFormat(t, "NormalizeSectionHeaderName", []string{"uppercase=true"},
		"*** Settings ***\n",
		"*** SETTINGS ***\n")
}

func TestNormalizeSettingName(t *testing.T) {
	assertFormat(t, "NormalizeSettingName", nil,
		"*** Settings ***\nlibrary    X\nsuite setup    Prepare\n*** Test Cases ***\nTest\n    [tags]    smoke\n",
		"*** Settings ***\nLibrary    X\nSuite Setup    Prepare\n*** Test Cases ***\nTest\n    [Tags]    smoke\n")
}

func TestReplaceRunKeywordIf(t *testing.T) {
	assertFormat(t, "ReplaceRunKeywordIf", nil,
		"*** Test Cases ***\nTest\n    Run Keyword If    ${cond}    Log    message\n",
		"*** Test Cases ***\nTest\n    IF    ${cond}\n        Log    message\n    END\n")
}

func TestReplaceRunKeywordIfBranches(t *testing.T) {
	src := "*** Test Cases ***\nTest\n" +
		"    Run Keyword If    ${a}    Log    one\n" +
		"    ...    ELSE IF    ${b}    Log    two\n" +
		"    ...    ELSE    Log    three\n"
	want := "*** Test Cases ***\nTest\n" +
		"    IF    ${a}\n        Log    one\n" +
		"    ELSE IF    ${b}\n        Log    two\n" +
		"    ELSE\n        Log    three\n" +
		"    END\n"
	assertFormat(t, "ReplaceRunKeywordIf", nil, src, want)
}

func TestReplaceRunKeywordIfAssignmentGainsElse(t *testing.T) {
	assertFormat(t, "ReplaceRunKeywordIf", nil,
		"*** Test Cases ***\nTest\n    ${var}    Run Keyword If    ${cond}    Get Value\n",
		"*** Test Cases ***\nTest\n    IF    ${cond}\n        ${var}    Get Value\n    ELSE\n        ${var}    Set Variable    ${None}\n    END\n")
}

func TestReplaceRunKeywordIfSplitsRunKeywords(t *testing.T) {
	assertFormat(t, "ReplaceRunKeywordIf", nil,
		"*** Test Cases ***\nTest\n    Run Keyword If    ${cond}    Run Keywords    Log    a    AND    Log    b\n",
		"*** Test Cases ***\nTest\n    IF    ${cond}\n        Log    a\n        Log    b\n    END\n")
}

func TestReplaceRunKeywordIfLeavesInvalidCalls(t *testing.T) {
	// missing keyword call after the condition
	src := "*** Test Cases ***\nTest\n    Run Keyword If    ${cond}\n"
	assertFormat(t, "ReplaceRunKeywordIf", nil, src, src)
	// trailing comment
	src = "*** Test Cases ***\nTest\n    Run Keyword If    ${cond}    Log    x    # why\n"
	assertFormat(t, "ReplaceRunKeywordIf", nil, src, src)
}

func TestReplaceRunKeywordIfHonorsLineRange(t *testing.T) {
	src := "*** Test Cases ***\nTest\n    Run Keyword If    ${cond}    Log    x\n"
	got := runPass(t, "ReplaceRunKeywordIf", nil, Config{StartLine: 1, EndLine: 2}, src)
	if got != src {
		t.Fatalf("rewrite ran outside the line range:\n%q", got)
	}
}

func TestSplitTooLongLine(t *testing.T) {
	assertFormat(t, "SplitTooLongLine", []string{"line_length=20"},
		"*** Test Cases ***\nTest\n    Keyword    arg1    arg2    arg3\n",
		"*** Test Cases ***\nTest\n    Keyword    arg1\n    ...    arg2\n    ...    arg3\n")
}

func TestSplitTooLongLineLeavesShortLines(t *testing.T) {
	src := "*** Test Cases ***\nTest\n    Log    message\n"
	assertFormat(t, "SplitTooLongLine", nil, src, src)
}

func TestSmartSortKeywords(t *testing.T) {
	assertFormat(t, "SmartSortKeywords", nil,
		"*** Keywords ***\nZebra\n    Log    z\n\n# helper docs\nAlpha\n    Log    a\n",
		"*** Keywords ***\n# helper docs\nAlpha\n    Log    a\nZebra\n    Log    z\n\n")
}

func TestPipelineDefaultRunIsIdempotent(t *testing.T) {
	invs, err := Load(DefaultCatalog(), nil, nil, nil, LoadOptions{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	src := "*** settings ***\nlibrary   Collections\nDocumentation   My suite\n\n\n*** Test Cases ***\nTest\n    [Teardown]    Close\n    Log    x\n    Run Keyword If    ${ok}    Log    y\n"
	format := func(in string) string {
		doc, err := parser.Parse("test.robot", []byte(in))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		p := NewPipeline(invs, Config{})
		if err := p.Run(doc); err != nil {
			t.Fatalf("run: %v", err)
		}
		return string(doc.Render(p.Config.SpaceCount))
	}
	once := format(src)
	twice := format(once)
	if once != twice {
		t.Fatalf("default pipeline is not idempotent:\nonce  %q\ntwice %q", once, twice)
	}
}
