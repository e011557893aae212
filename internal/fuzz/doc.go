// Package fuzztests houses Go fuzz harnesses that feed arbitrary bytes
// through the raw tree decoders and the normalizer. Its goal is to guard
// against panics and runaway recursion on hostile documents.
//
// Назначение: загружать байты в FileSet, декодировать как XML или JSON и
// нормализовать результат.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/rawtree, internal/normalize,
// internal/ast.
package fuzztests
