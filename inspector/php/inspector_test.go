package php_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/phplint/inspector/php"
	"github.com/viant/phplint/token"
)

const classSource = `<?php
class Foo
{
    private $_bar;
    public $baz = 1;

    public function __construct(protected $_repo)
    {
    }

    public function run($x)
    {
        if ($x) {
            return self::$_bar . $this->baz;
        }
    }

    abstract public function stop();
}
`

// find returns nth (0-based) token with content
func find(t *testing.T, stream *token.Stream, content string, nth int) *token.Token {
	for _, tok := range stream.Tokens() {
		if tok.Content != content {
			continue
		}
		if nth == 0 {
			return tok
		}
		nth--
	}
	require.Failf(t, "token not found", "%q", content)
	return nil
}

func TestInspector_InspectSource(t *testing.T) {
	stream, err := php.NewInspector(nil).InspectSource([]byte(classSource), "Foo.php")
	require.NoError(t, err)
	require.NoError(t, stream.Validate())
	assert.Equal(t, "Foo.php", stream.Filename)

	var rebuilt strings.Builder
	for _, tok := range stream.Tokens() {
		rebuilt.WriteString(tok.Content)
	}
	assert.Equal(t, classSource, rebuilt.String(), "tokens cover whole source")

	class := find(t, stream, "class", 0)
	assert.Equal(t, token.Class, class.Kind)
	assert.Equal(t, 2, class.Line)
	assert.Equal(t, 1, class.Column)
	assert.Equal(t, 0, class.Level)
	require.True(t, class.HasScope())
	assert.Equal(t, "{", stream.Token(class.ScopeOpener).Content)
	assert.Equal(t, "}", stream.Token(class.ScopeCloser).Content)
	assert.Equal(t, 0, stream.Token(class.ScopeCloser).Level)

	bar := find(t, stream, "$_bar", 0)
	assert.Equal(t, token.Variable, bar.Kind)
	assert.Equal(t, 1, bar.Level)
	visibility, ok := stream.MemberVisibility(bar.Position)
	assert.True(t, ok)
	assert.Equal(t, token.Private, visibility)

	baz := find(t, stream, "$baz", 0)
	visibility, ok = stream.MemberVisibility(baz.Position)
	assert.True(t, ok)
	assert.Equal(t, token.Public, visibility)

	repo := find(t, stream, "$_repo", 0)
	visibility, ok = stream.MemberVisibility(repo.Position)
	assert.True(t, ok)
	assert.Equal(t, token.Protected, visibility)

	run := find(t, stream, "function", 1)
	assert.Equal(t, token.Function, run.Kind)
	assert.Equal(t, 1, run.Level)
	require.True(t, run.HasScope())
	assert.Equal(t, "run", stream.Token(stream.FindNext([]token.Kind{token.String}, run.Position, -1, false)).Content)

	param := find(t, stream, "$x", 0)
	assert.False(t, stream.IsMember(param.Position))
	assert.True(t, stream.HasCondition(param.Position, token.Class))
	assert.False(t, stream.HasCondition(param.Position, token.Function))

	scoped := find(t, stream, "$_bar", 1)
	assert.Equal(t, 3, scoped.Level)
	assert.False(t, stream.IsMember(scoped.Position))
	assert.Equal(t, []token.Condition{{Kind: token.Class, Position: class.Position}, {Kind: token.Function, Position: run.Position}}, scoped.Conditions)
	assert.Equal(t, token.DoubleColon, stream.Token(stream.PreviousNonWhitespace(scoped.Position)).Kind)

	this := find(t, stream, "$this", 0)
	operator := stream.Token(this.Position + 1)
	assert.Equal(t, token.ObjectOperator, operator.Kind)
	assert.Equal(t, token.String, stream.Token(operator.Position+1).Kind)

	stop := find(t, stream, "function", 2)
	assert.Equal(t, token.Function, stop.Kind)
	assert.False(t, stop.HasScope())
}

func TestInspector_InspectSource_strings(t *testing.T) {
	source := `<?php
$message = "value is $fooBar and $bad_name";
$plain = 'single $quoted';
// comment $ignored
$handler = function ($event) {
    return $event;
};
`
	stream, err := php.NewInspector(nil).InspectSource([]byte(source), "strings.php")
	require.NoError(t, err)
	require.NoError(t, stream.Validate())

	quoted := find(t, stream, `"value is $fooBar and $bad_name"`, 0)
	assert.Equal(t, token.DoubleQuotedString, quoted.Kind)
	assert.Equal(t, token.ConstantEncapsedString, find(t, stream, `'single $quoted'`, 0).Kind)
	assert.Equal(t, token.Comment, find(t, stream, `// comment $ignored`, 0).Kind)

	for _, tok := range stream.Tokens() {
		if tok.Kind == token.Variable {
			assert.NotContains(t, []string{"$fooBar", "$bad_name", "$quoted", "$ignored"}, tok.Content)
		}
	}

	closure := find(t, stream, "function", 0)
	assert.Equal(t, token.Closure, closure.Kind)
	require.True(t, closure.HasScope())
	event := find(t, stream, "$event", 1)
	assert.Equal(t, 1, event.Level)
	assert.True(t, stream.HasCondition(event.Position, token.Closure))
}

func TestInspector_InspectFile(t *testing.T) {
	location := filepath.Join(t.TempDir(), "main.php")
	require.NoError(t, os.WriteFile(location, []byte("<?php\nfunction main() {}\n"), 0644))

	stream, src, err := php.NewInspector(nil).InspectFile(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, "<?php\nfunction main() {}\n", string(src))
	fn := find(t, stream, "function", 0)
	assert.True(t, fn.HasScope())

	_, _, err = php.NewInspector(nil).InspectFile(context.Background(), filepath.Join(t.TempDir(), "missing.php"))
	assert.Error(t, err)
}
