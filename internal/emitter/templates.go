package emitter

// The emitted C# shapes. Namespaces are optional: descriptors carry the
// empty string for the global namespace and the templates drop the
// namespace line entirely in that case.

const dataContextTemplate = `using Microsoft.EntityFrameworkCore;
{{if .Namespace}}
namespace {{.Namespace}};
{{end}}
public class {{.ClassName}} : DbContext
{
    public {{.ClassName}}(DbContextOptions<{{.ClassName}}> options)
        : base(options)
    {
    }
{{if .NewMemberDeclaration}}
    {{.NewMemberDeclaration}}
{{end}}}
`

const modelClassTemplate = `{{if .Namespace}}namespace {{.Namespace}};

{{end}}public class {{.TypeName}}
{
{{- range .Members}}
    public {{.Type}} {{.Name}} { get; set; }
{{- end}}
}
`

const controllerTemplate = `using Microsoft.AspNetCore.Mvc;
using Microsoft.EntityFrameworkCore;
{{if .Namespace}}
namespace {{.Namespace}};
{{end}}
public class {{.Model.TypeName}}Controller : Controller
{
    private readonly {{.Context.ClassName}} _context;

    public {{.Model.TypeName}}Controller({{.Context.ClassName}} context)
    {
        _context = context;
    }

    // GET: {{.EntitySet}}
    public async Task<IActionResult> Index()
    {
        return View(await _context.{{.EntitySet}}.ToListAsync());
    }

    // GET: {{.EntitySet}}/Details/5
    public async Task<IActionResult> Details({{.Model.PrimaryKeyShortTypeName}} {{.KeyParam}})
    {
        var entity = await _context.{{.EntitySet}}
            .FirstOrDefaultAsync(m => m.{{.Model.PrimaryKeyName}} == {{.KeyParam}});
        if (entity == null)
        {
            return NotFound();
        }

        return View(entity);
    }

    // POST: {{.EntitySet}}/Create
    [HttpPost]
    [ValidateAntiForgeryToken]
    public async Task<IActionResult> Create({{.Model.FullName}} entity)
    {
        if (ModelState.IsValid)
        {
            _context.Add(entity);
            await _context.SaveChangesAsync();
            return RedirectToAction(nameof(Index));
        }
        return View(entity);
    }

    // POST: {{.EntitySet}}/Edit/5
    [HttpPost]
    [ValidateAntiForgeryToken]
    public async Task<IActionResult> Edit({{.Model.PrimaryKeyShortTypeName}} {{.KeyParam}}, {{.Model.FullName}} entity)
    {
        if ({{.KeyParam}} != entity.{{.Model.PrimaryKeyName}})
        {
            return NotFound();
        }

        if (ModelState.IsValid)
        {
            _context.Update(entity);
            await _context.SaveChangesAsync();
            return RedirectToAction(nameof(Index));
        }
        return View(entity);
    }

    // POST: {{.EntitySet}}/Delete/5
    [HttpPost, ActionName("Delete")]
    [ValidateAntiForgeryToken]
    public async Task<IActionResult> DeleteConfirmed({{.Model.PrimaryKeyShortTypeName}} {{.KeyParam}})
    {
        var entity = await _context.{{.EntitySet}}.FindAsync({{.KeyParam}});
        if (entity != null)
        {
            _context.{{.EntitySet}}.Remove(entity);
            await _context.SaveChangesAsync();
        }

        return RedirectToAction(nameof(Index));
    }
}
`
