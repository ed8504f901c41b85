package esx

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/agentstation/esxsync/pkg/constants"
	"github.com/agentstation/esxsync/pkg/errors"
)

// readMember returns the contents of a named member of the archive. A name
// stored more than once is rejected, since extraction would keep a
// different copy than the one read here.
func readMember(r *zip.Reader, name string) ([]byte, error) {
	var member *zip.File
	for _, f := range r.File {
		if path.Clean(f.Name) != name {
			continue
		}
		if member != nil {
			return nil, duplicateMember(name)
		}
		member = f
	}
	if member == nil {
		return nil, errors.NewNotFoundError(errors.ResourceArchiveMember, name)
	}

	rc, err := member.Open()
	if err != nil {
		return nil, errors.WrapIO("open", name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}
	return data, nil
}

func duplicateMember(name string) error {
	return errors.NewValidationError(errors.ResourceArchiveMember, name, "stored more than once")
}

// extract unpacks every member of the archive at src into dir.
func extract(src, dir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return errors.WrapIO("open", src, err)
	}
	defer func() { _ = r.Close() }()

	seen := make(map[string]bool, len(r.File))
	for _, f := range r.File {
		name := path.Clean(f.Name)
		if seen[name] {
			return duplicateMember(name)
		}
		seen[name] = true
		if err := extractFile(f, dir); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, dir string) error {
	name := filepath.FromSlash(f.Name)
	if !filepath.IsLocal(name) {
		return errors.NewValidationError(errors.ResourceArchiveMember, f.Name, "path escapes the extraction directory")
	}
	target := filepath.Join(dir, name)

	if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
		return errors.WrapIO("create", target, os.MkdirAll(target, constants.DirPermissions))
	}
	if err := os.MkdirAll(filepath.Dir(target), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(target), err)
	}

	rc, err := f.Open()
	if err != nil {
		return errors.WrapIO("open", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return errors.WrapIO("write", target, err)
	}
	return errors.WrapIO("close", target, out.Close())
}

// pack writes every regular file under dir as a zip archive to w, named dst
// in errors. Members are added in lexical order so identical trees produce
// identical archives.
func pack(dir string, w io.Writer, dst string) error {
	zw := zip.NewWriter(w)
	walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		return addFile(zw, p, filepath.ToSlash(rel))
	})
	if walkErr != nil {
		_ = zw.Close()
		return errors.WrapIO("write", dst, walkErr)
	}
	return errors.WrapIO("write", dst, zw.Close())
}

func addFile(zw *zip.Writer, src, name string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}
